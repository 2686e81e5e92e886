package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"relex/internal/diag"
	"relex/internal/source"
)

// Pretty renders diagnostics in a human-readable form. It walks bag.Items()
// in order, so callers wanting a deterministic layout run bag.Sort() first.
// Each diagnostic prints as
//
//	<path>:<line>:<col>: <SEVERITY> [<ID>]: <message>
//
// followed by the offending source line with a ^~~~ marker under the span.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writePretty(w, d, fs, opts)
	}
}

func writePretty(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	file := fs.Get(d.Primary.File)
	startPos, endPos := fs.Resolve(d.Primary)
	path := file.FormatPath(opts.PathMode.modeString(), fs.BaseDir())

	sev := d.Severity.String()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s [%s]: %s\n",
		path, startPos.Line, startPos.Col, sev, d.Code.ID(), d.Message)

	writeMarkedLine(w, file, startPos, endPos, opts)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nStart, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  note: %s:%d:%d: %s\n", path, nStart.Line, nStart.Col, n.Msg)
		}
	}
}

// writeMarkedLine prints the source line of the span start with a caret
// under the spanned bytes. Columns are byte-based, the marker width is
// display-cell based so wide runes get a correctly sized underline.
func writeMarkedLine(w io.Writer, file *source.File, startPos, endPos source.LineCol, opts PrettyOpts) {
	line := file.GetLine(startPos.Line)
	if line == "" {
		return
	}

	startByte := int(startPos.Col) - 1
	if startByte > len(line) {
		startByte = len(line)
	}
	endByte := len(line)
	if endPos.Line == startPos.Line && int(endPos.Col)-1 < endByte {
		endByte = int(endPos.Col) - 1
	}
	if endByte < startByte {
		endByte = startByte
	}

	indent := runewidth.StringWidth(line[:startByte])
	width := runewidth.StringWidth(line[startByte:endByte])
	if width < 1 {
		width = 1
	}

	marker := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		marker = color.New(color.FgGreen, color.Bold).Sprint(marker)
	}

	fmt.Fprintf(w, "  %s\n", line)
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", indent), marker)
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}
