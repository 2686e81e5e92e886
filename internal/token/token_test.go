package token

import (
	"testing"

	"relex/internal/source"
)

func TestTokenLen(t *testing.T) {
	tok := Token{Type: "number", Value: "1234", Start: 6, End: 10}
	if tok.Len() != 4 {
		t.Errorf("expected Len 4, got %d", tok.Len())
	}
}

func TestTokenSpan(t *testing.T) {
	tok := Token{Type: "snowman", Value: "☃", Start: 3, End: 6}
	span := tok.Span(source.FileID(1))
	want := source.Span{File: 1, Start: 3, End: 6}
	if span != want {
		t.Errorf("expected span %+v, got %+v", want, span)
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Type: "identifier", Value: "abdk", Start: 11, End: 15}
	want := `identifier("abdk")@11-15`
	if got := tok.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
