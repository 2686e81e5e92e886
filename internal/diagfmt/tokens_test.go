package diagfmt

import (
	"encoding/json"
	"strings"
	"testing"

	"relex/internal/source"
	"relex/internal/token"
)

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("input.txt", []byte("ab\n12"))
	toks := []token.Token{
		{Type: "identifier", Value: "ab", Start: 0, End: 2},
		{Type: "number", Value: "12", Start: 3, End: 5},
	}

	var sb strings.Builder
	if err := FormatTokensPretty(&sb, toks, fs, id); err != nil {
		t.Fatalf("FormatTokensPretty: %v", err)
	}
	out := sb.String()

	if !strings.Contains(out, `identifier      "ab" at 1:1-1:3`) {
		t.Errorf("missing identifier line:\n%s", out)
	}
	if !strings.Contains(out, `number          "12" at 2:1-2:3`) {
		t.Errorf("missing number line:\n%s", out)
	}
}

func TestFormatTokensJSON(t *testing.T) {
	toks := []token.Token{
		{Type: "snowman", Value: "☃", Start: 3, End: 6},
	}

	var sb strings.Builder
	if err := FormatTokensJSON(&sb, toks); err != nil {
		t.Fatalf("FormatTokensJSON: %v", err)
	}

	var got []TokenOutput
	if err := json.Unmarshal([]byte(sb.String()), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 1 || got[0] != (TokenOutput{Type: "snowman", Value: "☃", Start: 3, End: 6}) {
		t.Errorf("got %+v", got)
	}
}

func TestFormatTokensJSONEmpty(t *testing.T) {
	var sb strings.Builder
	if err := FormatTokensJSON(&sb, nil); err != nil {
		t.Fatalf("FormatTokensJSON: %v", err)
	}
	if strings.TrimSpace(sb.String()) != "[]" {
		t.Errorf("expected empty array, got %q", sb.String())
	}
}
