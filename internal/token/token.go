// Package token defines the token produced by the scanner. Token types are
// open-ended names taken from the lexicon, not a closed kind enum, so a Token
// carries its type as a string.
package token

import (
	"fmt"

	"relex/internal/source"
)

// Token is a single lexeme. Value is a substring of the scanned source, and
// [Start, End) is its half-open byte range within that source.
type Token struct {
	Type  string
	Value string
	Start int
	End   int
}

// Len returns the byte length of the lexeme.
func (t Token) Len() int {
	return t.End - t.Start
}

// Span converts the byte range into a source.Span for diagnostics.
func (t Token) Span(file source.FileID) source.Span {
	return source.SpanFromOffsets(file, t.Start, t.End)
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d-%d", t.Type, t.Value, t.Start, t.End)
}
