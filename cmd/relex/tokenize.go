package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"relex/internal/diag"
	"relex/internal/diagfmt"
	"relex/internal/driver"
	"relex/internal/lexer"
	"relex/internal/lexicon"
	"relex/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] path",
	Short: "Tokenize a file or a directory of files",
	Long:  `Tokenize scans input with the tokenizer built from --lexicon and prints the resulting tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("lexicon", "", "path to the lexicon TOML file (required)")
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Int("jobs", 0, "parallel workers for directory scans (0 = all cores)")
	tokenizeCmd.Flags().String("ext", ".txt", "file extension filter for directory scans")
	tokenizeCmd.Flags().String("ui", "auto", "interactive progress for directory scans (auto|on|off)")
	tokenizeCmd.Flags().Bool("cache", false, "reuse cached token streams for unchanged files")
	_ = tokenizeCmd.MarkFlagRequired("lexicon")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	path := args[0]

	lexiconPath, _ := cmd.Flags().GetString("lexicon")
	format, _ := cmd.Flags().GetString("format")
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	lx, err := lexicon.Load(lexiconPath)
	if err != nil {
		return err
	}
	tok, err := lx.Build()
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return tokenizeDir(cmd, path, tok)
	}
	return tokenizeFile(cmd, path, tok, format)
}

func tokenizeFile(cmd *cobra.Command, path string, tok *lexer.Tokenizer, format string) error {
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")

	result, err := driver.TokenizeFile(path, tok, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	printDiagnostics(cmd, result.Bag, result.FileSet, format)

	switch format {
	case "json":
		if err := diagfmt.FormatTokensJSON(os.Stdout, result.Tokens); err != nil {
			return err
		}
	default:
		if err := diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet, result.File.ID); err != nil {
			return err
		}
	}

	if result.Bag.HasErrors() {
		return fmt.Errorf("scanning failed")
	}
	return nil
}

func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fileSet *source.FileSet, format string) {
	if !bag.HasErrors() && !bag.HasWarnings() {
		return
	}
	bag.Sort()
	if format == "json" {
		_ = diagfmt.JSON(os.Stderr, bag, fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		})
		return
	}
	diagfmt.Pretty(os.Stderr, bag, fileSet, diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		ShowNotes: true,
	})
}

// resolveUIFlag turns the --ui flag into a yes/no decision. "auto" (and an
// empty value) means interactive only when stdout is a terminal.
func resolveUIFlag(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "", "auto":
		return isTerminal(os.Stdout), nil
	}
	return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// fileTokens pairs a scanned path with its tokens for JSON directory output.
type fileTokens struct {
	Path   string               `json:"path"`
	Tokens []diagfmt.TokenOutput `json:"tokens"`
}

func tokenizeDir(cmd *cobra.Command, dir string, tok *lexer.Tokenizer) error {
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	format, _ := cmd.Flags().GetString("format")
	jobs, _ := cmd.Flags().GetInt("jobs")
	ext, _ := cmd.Flags().GetString("ext")
	uiFlag, _ := cmd.Flags().GetString("ui")
	useCache, _ := cmd.Flags().GetBool("cache")

	withTUI, err := resolveUIFlag(uiFlag)
	if err != nil {
		return err
	}

	var cache *driver.TokenCache
	if useCache {
		cache, err = driver.OpenTokenCache("relex")
		if err != nil {
			return fmt.Errorf("failed to open token cache: %w", err)
		}
	}

	opts := driver.DirOptions{
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		Ext:            ext,
		Cache:          cache,
	}

	ctx := cmd.Context()
	fileSet, results, err := scanDir(ctx, dir, tok, opts, withTUI)
	if err != nil {
		return err
	}

	failures := 0
	for i := range results {
		res := &results[i]
		printDiagnostics(cmd, res.Bag, fileSet, format)
		if res.Bag.HasErrors() {
			failures++
		}
	}

	if format == "json" {
		out := make([]fileTokens, 0, len(results))
		for _, res := range results {
			ft := fileTokens{Path: res.Path, Tokens: make([]diagfmt.TokenOutput, 0, len(res.Tokens))}
			for _, t := range res.Tokens {
				ft.Tokens = append(ft.Tokens, diagfmt.TokenOutput{
					Type: t.Type, Value: t.Value, Start: t.Start, End: t.End,
				})
			}
			out = append(out, ft)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else if !quiet {
		for _, res := range results {
			if res.Tokens == nil {
				continue
			}
			fmt.Fprintf(os.Stdout, "== %s ==\n", res.Path)
			if err := diagfmt.FormatTokensPretty(os.Stdout, res.Tokens, fileSet, res.FileID); err != nil {
				return err
			}
		}
	}

	if !quiet {
		cached := 0
		total := 0
		for _, res := range results {
			total += len(res.Tokens)
			if res.FromCache {
				cached++
			}
		}
		fmt.Fprintf(os.Stderr, "scanned %d file(s), %d token(s), %d from cache, %d failure(s)\n",
			len(results), total, cached, failures)
	}

	if failures > 0 {
		return fmt.Errorf("scanning failed for %d file(s)", failures)
	}
	return nil
}
