package diagfmt

import (
	"encoding/json"
	"io"

	"relex/internal/diag"
	"relex/internal/source"
)

type DiagnosticOutput struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Path     string       `json:"path"`
	Start    uint32       `json:"start"`
	End      uint32       `json:"end"`
	Line     uint32       `json:"line,omitempty"`
	Col      uint32       `json:"col,omitempty"`
	Notes    []NoteOutput `json:"notes,omitempty"`
}

type NoteOutput struct {
	Message string `json:"message"`
	Start   uint32 `json:"start"`
	End     uint32 `json:"end"`
}

// JSON renders diagnostics as a JSON array.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	out := make([]DiagnosticOutput, 0, bag.Len())
	for i, d := range bag.Items() {
		if opts.Max > 0 && i >= opts.Max {
			break
		}

		file := fs.Get(d.Primary.File)
		rec := DiagnosticOutput{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Path:     file.FormatPath(opts.PathMode.modeString(), fs.BaseDir()),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		if opts.IncludePositions {
			pos, _ := fs.Resolve(d.Primary)
			rec.Line = pos.Line
			rec.Col = pos.Col
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				rec.Notes = append(rec.Notes, NoteOutput{
					Message: n.Msg,
					Start:   n.Span.Start,
					End:     n.Span.End,
				})
			}
		}
		out = append(out, rec)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
