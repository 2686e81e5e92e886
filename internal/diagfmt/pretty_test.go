package diagfmt

import (
	"strings"
	"testing"

	"relex/internal/diag"
	"relex/internal/source"
)

func newTestBag(fs *source.FileSet) (*diag.Bag, source.FileID) {
	id := fs.AddVirtual("input.txt", []byte(" * +abc \n"))
	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexUnexpectedInput,
		Message:  "input matches no token type",
		Primary:  source.Span{File: id, Start: 1, End: 2},
		Notes: []diag.Note{
			{Span: source.Span{File: id, Start: 1, End: 2}, Msg: "scanning stopped here"},
		},
	})
	return bag, id
}

func TestPretty(t *testing.T) {
	fs := source.NewFileSet()
	bag, _ := newTestBag(fs)

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	out := sb.String()

	if !strings.Contains(out, "input.txt:1:2: ERROR [LEX1001]: input matches no token type") {
		t.Errorf("missing header line:\n%s", out)
	}
	if !strings.Contains(out, " * +abc ") {
		t.Errorf("missing context line:\n%s", out)
	}
	// span covers one byte at display column 2
	if !strings.Contains(out, "\n   ^\n") {
		t.Errorf("missing caret marker:\n%s", out)
	}
	if !strings.Contains(out, "note: input.txt:1:2: scanning stopped here") {
		t.Errorf("missing note:\n%s", out)
	}
}

func TestPrettyMultiByteMarker(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("u.txt", []byte("x ☃☃ y\n"))
	bag := diag.NewBag(10)
	// the two snowmen span bytes 2..8
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.SrcNotNFC,
		Message:  "marker width test",
		Primary:  source.Span{File: id, Start: 2, End: 8},
	})

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	out := sb.String()

	// two single-width runes under the marker, indent of two cells
	if !strings.Contains(out, "\n    ^~\n") {
		t.Errorf("unexpected marker:\n%s", out)
	}
}

func TestJSON(t *testing.T) {
	fs := source.NewFileSet()
	bag, _ := newTestBag(fs)

	var sb strings.Builder
	err := JSON(&sb, bag, fs, JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
		PathMode:         PathModeBasename,
	})
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	out := sb.String()

	for _, want := range []string{`"code": "LEX1001"`, `"path": "input.txt"`, `"line": 1`, `"col": 2`, `"scanning stopped here"`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in output:\n%s", want, out)
		}
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("input.txt", []byte("abc"))
	bag := diag.NewBag(10)
	for n := 0; n < 5; n++ {
		bag.Add(diag.Diagnostic{Severity: diag.SevInfo, Code: diag.LexInfo, Primary: source.Span{File: id}})
	}

	var sb strings.Builder
	if err := JSON(&sb, bag, fs, JSONOpts{Max: 2}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if got := strings.Count(sb.String(), `"code"`); got != 2 {
		t.Errorf("expected 2 records, got %d", got)
	}
}
