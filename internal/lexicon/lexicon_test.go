package lexicon

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleLexicon = `
[lexicon]
ignore = '\s+'

[[token]]
name = "+"

[[token]]
name = "snowman"
pattern = '☃'

[[token]]
name = "number"
pattern = '[0-9]+'

[[token]]
name = "identifier"
pattern = '[a-z]+'
`

func TestParse(t *testing.T) {
	lx, err := Parse(sampleLexicon)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if lx.Ignore != `\s+` {
		t.Errorf("ignore = %q", lx.Ignore)
	}

	wantTypes := []string{"+", "snowman", "number", "identifier"}
	gotTypes := lx.Types()
	if len(gotTypes) != len(wantTypes) {
		t.Fatalf("types = %v", gotTypes)
	}
	for i := range wantTypes {
		if gotTypes[i] != wantTypes[i] {
			t.Errorf("types[%d] = %q, want %q", i, gotTypes[i], wantTypes[i])
		}
	}

	overrides := lx.Overrides()
	if len(overrides) != 3 {
		t.Errorf("overrides = %v", overrides)
	}
	if overrides["number"] != `[0-9]+` {
		t.Errorf("number override = %q", overrides["number"])
	}
	if _, ok := overrides["+"]; ok {
		t.Error("literal token must not appear in overrides")
	}
}

func TestParseDefaultIgnore(t *testing.T) {
	lx, err := Parse("[[token]]\nname = \"x\"\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if lx.Ignore != `\s+` {
		t.Errorf("expected default ignore, got %q", lx.Ignore)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantSub string
	}{
		{"broken toml", "[[token", "failed to parse TOML"},
		{"no tokens", "[lexicon]\nignore = 'x'\n", "no [[token]] entries"},
		{"missing name", "[[token]]\npattern = 'a'\n", "missing name"},
		{"duplicate name", "[[token]]\nname = \"a\"\n[[token]]\nname = \"a\"\n", "duplicate token type"},
		{"unknown key", "[[token]]\nname = \"a\"\ncolor = \"red\"\n", "unknown key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.toml")
	if err := os.WriteFile(path, []byte(sampleLexicon), 0o600); err != nil {
		t.Fatalf("write lexicon: %v", err)
	}

	lx, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(lx.Tokens) != 4 {
		t.Errorf("expected 4 tokens, got %d", len(lx.Tokens))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestBuild(t *testing.T) {
	lx, err := Parse(sampleLexicon)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	tok, err := lx.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	toks, err := tok.Tokenize("  +☃1234 abdk ☃", 0)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(toks) != 5 {
		t.Fatalf("expected 5 tokens, got %v", toks)
	}
	if toks[1].Type != "snowman" || toks[1].Start != 3 || toks[1].End != 6 {
		t.Errorf("unexpected snowman token: %+v", toks[1])
	}
}

func TestBuildRejectsBadPattern(t *testing.T) {
	lx, err := Parse("[[token]]\nname = \"bad\"\npattern = '['\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := lx.Build(); err == nil {
		t.Error("expected a compile error")
	}
}
