// Package diag defines the diagnostic model shared by the scanner driver and
// the CLI. It holds deterministic, serialisable records and light utilities
// (Reporter, Bag) so producers can emit findings without coupling to storage
// or formatting; rendering lives in internal/diagfmt.
package diag

import (
	"relex/internal/source"
)

// Note is a secondary span with extra context for a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a single finding anchored to a primary source span.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
