// Package testkit holds invariant checks shared by tests and fuzzing.
package testkit

import (
	"fmt"

	"relex/internal/token"
)

// CheckTokenStream runs the structural invariants of a successful scan:
// 1) tokens are ordered and non-overlapping, with start < end
// 2) every token value is exactly the source slice at its offsets
// 3) the gaps between tokens, before the first, and after the last consist
// only of ignorable input
func CheckTokenStream(src string, toks []token.Token, ignorable func(string) bool) error {
	prevEnd := 0
	for i, tok := range toks {
		if tok.Start >= tok.End {
			return fmt.Errorf("token %d: empty or inverted range %d-%d", i, tok.Start, tok.End)
		}
		if tok.Start < prevEnd {
			return fmt.Errorf("token %d: starts at %d before previous end %d", i, tok.Start, prevEnd)
		}
		if tok.End > len(src) {
			return fmt.Errorf("token %d: end %d beyond source length %d", i, tok.End, len(src))
		}
		if got := src[tok.Start:tok.End]; got != tok.Value {
			return fmt.Errorf("token %d: value %q does not match source slice %q", i, tok.Value, got)
		}
		if gap := src[prevEnd:tok.Start]; gap != "" && !ignorable(gap) {
			return fmt.Errorf("token %d: non-ignorable gap %q before it", i, gap)
		}
		prevEnd = tok.End
	}
	if tail := src[prevEnd:]; tail != "" && !ignorable(tail) {
		return fmt.Errorf("non-ignorable tail %q after last token", tail)
	}
	return nil
}
