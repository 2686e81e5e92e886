package lexer

// step is the outcome of one match against the remaining input.
type step struct {
	typeIndex int // index into types, meaningless when ignored
	end       int // absolute byte offset just past the match
	ignored   bool
}

// step matches the composite pattern at offset and classifies which
// alternative won by scanning the wrapping capture groups. The alternation is
// leftmost-first, so exactly one wrapping group participates and it belongs
// to the highest-priority alternative that matches.
func (t *Tokenizer) step(src string, offset int) (step, bool) {
	m := t.re.FindStringSubmatchIndex(src[offset:])
	if m == nil {
		return step{}, false
	}

	end := offset + m[1]
	for k, base := range t.bases {
		if m[2*base] < 0 {
			continue
		}
		if k == 0 {
			return step{end: end, ignored: true}, true
		}
		return step{typeIndex: k - 1, end: end}, true
	}
	// the whole pattern is the alternation, so some group participated
	return step{}, false
}
