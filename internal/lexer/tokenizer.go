// Package lexer implements a regex-driven tokenizer. All token types and the
// ignore pattern are compiled into a single anchored alternation, so every
// scanning step is one regexp match against the remaining input.
package lexer

import (
	"regexp"
	"strings"

	"relex/internal/token"
)

// Tokenizer scans source text into tokens. It is immutable after New and safe
// for concurrent use; each call carries its own source and offset.
type Tokenizer struct {
	types   []string
	pattern string
	re      *regexp.Regexp
	// bases[0] is the capture group wrapping the ignore pattern, bases[k+1]
	// the group wrapping types[k]. Fragments may contain their own capture
	// groups, so the wrapping groups are not simply 1..N+1.
	bases []int
}

// New compiles an ignore pattern and an ordered list of token types into a
// Tokenizer. A type scans as its name quoted literally unless overrides maps
// the name to a regex fragment. Earlier types win when several could match at
// the same position.
//
// Every fragment must be a valid regex and must not match the empty string;
// either violation yields a *ConfigError.
func New(ignore string, overrides map[string]string, types []string) (*Tokenizer, error) {
	frags := make([]string, 0, len(types)+1)
	frags = append(frags, ignore)
	for _, name := range types {
		if pat, ok := overrides[name]; ok {
			frags = append(frags, pat)
		} else {
			frags = append(frags, regexp.QuoteMeta(name))
		}
	}

	bases := make([]int, len(frags))
	next := 1
	for i, frag := range frags {
		re, err := regexp.Compile(frag)
		if err != nil {
			return nil, &ConfigError{Fragment: frag, Reason: "does not compile", Err: err}
		}
		if re.MatchString("") {
			return nil, &ConfigError{Fragment: frag, Reason: "matches the empty string"}
		}
		bases[i] = next
		next += 1 + re.NumSubexp()
	}

	pattern := buildPattern(frags)
	re, err := regexp.Compile(pattern)
	if err != nil {
		// each fragment compiled on its own, so this is unreachable short
		// of a regexp library quirk
		return nil, &ConfigError{Fragment: pattern, Reason: "composite does not compile", Err: err}
	}

	return &Tokenizer{
		types:   append([]string(nil), types...),
		pattern: pattern,
		re:      re,
		bases:   bases,
	}, nil
}

// buildPattern assembles `^(?:(ignore)|(t1)|...|(tN))`. The anchor keeps every
// match glued to the current offset and the outer group makes the alternation
// bind tighter than any fragment-level `|`.
func buildPattern(frags []string) string {
	var b strings.Builder
	b.WriteString("^(?:")
	for i, frag := range frags {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteByte('(')
		b.WriteString(frag)
		b.WriteByte(')')
	}
	b.WriteByte(')')
	return b.String()
}

// Pattern returns the composite regex the tokenizer matches with.
func (t *Tokenizer) Pattern() string {
	return t.pattern
}

// Types returns the token type names in priority order.
func (t *Tokenizer) Types() []string {
	return append([]string(nil), t.types...)
}

// Next returns the next token at or after offset, skipping ignorable input.
// It returns (nil, nil) when only ignorable input remains, and a *SyntaxError
// when the input at the current position matches nothing.
func (t *Tokenizer) Next(src string, offset int) (*token.Token, error) {
	for offset < len(src) {
		st, ok := t.step(src, offset)
		if !ok {
			return nil, &SyntaxError{Offset: offset, Rest: src[offset:]}
		}
		if st.ignored {
			offset = st.end
			continue
		}
		return &token.Token{
			Type:  t.types[st.typeIndex],
			Value: src[offset:st.end],
			Start: offset,
			End:   st.end,
		}, nil
	}
	return nil, nil
}

// Tokenize scans src from offset to the end and returns all tokens. On a
// *SyntaxError the tokens scanned so far are discarded.
func (t *Tokenizer) Tokenize(src string, offset int) ([]token.Token, error) {
	var out []token.Token
	for {
		tok, err := t.Next(src, offset)
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return out, nil
		}
		out = append(out, *tok)
		offset = tok.End
	}
}
