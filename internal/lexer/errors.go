package lexer

import (
	"fmt"
	"unicode/utf8"
)

// ConfigError reports a token type or ignore pattern that cannot be compiled
// into the scanner. It is returned by New before any scanning happens.
type ConfigError struct {
	Fragment string // the offending pattern fragment
	Reason   string
	Err      error // underlying regexp error, if any
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid pattern %q: %s: %v", e.Fragment, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid pattern %q: %s", e.Fragment, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// SyntaxError reports input that matches neither the ignore pattern nor any
// token type. Offset is the byte position where scanning stopped and Rest is
// the unconsumed remainder of the source.
type SyntaxError struct {
	Offset int
	Rest   string
}

// restPreviewRunes bounds how much of Rest shows up in the error message.
const restPreviewRunes = 40

func (e *SyntaxError) Error() string {
	rest := e.Rest
	if utf8.RuneCountInString(rest) > restPreviewRunes {
		n := 0
		for i := range rest {
			if n == restPreviewRunes {
				rest = rest[:i] + "..."
				break
			}
			n++
		}
	}
	return fmt.Sprintf("unexpected input at offset %d: %q", e.Offset, rest)
}
