// Package driver orchestrates scanning: loading files, running the
// tokenizer, collecting diagnostics, and caching results. It is the layer
// between the pure scanner in internal/lexer and the CLI.
package driver

import (
	"errors"
	"unicode/utf8"

	"relex/internal/diag"
	"relex/internal/lexer"
	"relex/internal/source"
	"relex/internal/token"
)

// Result is the outcome of scanning a single file.
type Result struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// TokenizeFile loads a file and scans it with the given tokenizer. Scan
// failures land in the Bag; only I/O failures return an error.
func TokenizeFile(path string, tok *lexer.Tokenizer, maxDiagnostics int) (*Result, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(maxDiagnostics)
	tokens := TokenizeSource(fs, fileID, tok, bag)

	return &Result{
		FileSet: fs,
		File:    fs.Get(fileID),
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}

// TokenizeSource scans an already-loaded file, reporting findings into bag.
// Tokens are nil when the scan fails.
func TokenizeSource(fs *source.FileSet, fileID source.FileID, tok *lexer.Tokenizer, bag *diag.Bag) []token.Token {
	reportSourceHygiene(fs, fileID, bag)
	return scanTokens(fs, fileID, tok, bag)
}

// reportSourceHygiene emits warnings derived from the loaded content alone.
// It is separate from scanning so cached scans still produce them.
func reportSourceHygiene(fs *source.FileSet, fileID source.FileID, bag *diag.Bag) {
	file := fs.Get(fileID)
	if file.Flags&source.FileNotNFC != 0 {
		diag.ReportWarning(diag.BagReporter{Bag: bag}, diag.SrcNotNFC, source.Span{File: fileID},
			"source is not NFC-normalized; byte-wise patterns may not match decomposed text").Emit()
	}
}

func scanTokens(fs *source.FileSet, fileID source.FileID, tok *lexer.Tokenizer, bag *diag.Bag) []token.Token {
	file := fs.Get(fileID)
	reporter := diag.BagReporter{Bag: bag}

	tokens, err := tok.Tokenize(file.Text(), 0)
	if err != nil {
		var synErr *lexer.SyntaxError
		if errors.As(err, &synErr) {
			span := errorSpan(fileID, synErr)
			diag.ReportError(reporter, diag.LexUnexpectedInput, span,
				"input matches no token type").
				WithNote(span, "scanning stopped here").
				Emit()
		} else {
			diag.ReportError(reporter, diag.UnknownCode, source.Span{File: fileID}, err.Error()).Emit()
		}
		return nil
	}
	return tokens
}

// errorSpan covers the first rune of the unconsumed input.
func errorSpan(fileID source.FileID, synErr *lexer.SyntaxError) source.Span {
	width := 1
	if r, n := utf8.DecodeRuneInString(synErr.Rest); r != utf8.RuneError {
		width = n
	}
	return source.SpanFromOffsets(fileID, synErr.Offset, synErr.Offset+width)
}
