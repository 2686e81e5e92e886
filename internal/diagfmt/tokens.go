package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"relex/internal/source"
	"relex/internal/token"
)

type TokenOutput struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// FormatTokensPretty renders tokens one per line with line/col positions
// resolved against the scanned file.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet, file source.FileID) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span(file))
		_, err := fmt.Fprintf(w, "%3d: %-15s %q at %d:%d-%d:%d\n",
			i+1, tok.Type, tok.Value,
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON renders tokens as a JSON array of type/value/offset
// records.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, TokenOutput{
			Type:  tok.Type,
			Value: tok.Value,
			Start: tok.Start,
			End:   tok.End,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
