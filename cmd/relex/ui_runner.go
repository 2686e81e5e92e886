package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"relex/internal/driver"
	"relex/internal/lexer"
	"relex/internal/source"
	"relex/internal/ui"
)

type scanOutcome struct {
	fileSet *source.FileSet
	results []driver.FileResult
	err     error
}

// scanDir runs a directory scan, rendering live progress when withTUI is set.
func scanDir(ctx context.Context, dir string, tok *lexer.Tokenizer, opts driver.DirOptions, withTUI bool) (*source.FileSet, []driver.FileResult, error) {
	if !withTUI {
		return driver.TokenizeDir(ctx, dir, tok, opts)
	}

	files, err := driver.ListFiles(dir, opts.Ext)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return driver.TokenizeDir(ctx, dir, tok, opts)
	}

	sink := driver.NewChannelSink(256)
	outcomeCh := make(chan scanOutcome, 1)

	go func() {
		o := opts
		o.Progress = sink
		fileSet, results, err := driver.TokenizeDir(ctx, dir, tok, o)
		outcomeCh <- scanOutcome{fileSet: fileSet, results: results, err: err}
		close(sink.C)
	}()

	model := ui.NewProgressModel("tokenizing "+dir, files, sink.C)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
