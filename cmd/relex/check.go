package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"relex/internal/lexicon"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags]",
	Short: "Validate a lexicon file",
	Long:  `Check parses the lexicon and compiles its patterns without scanning anything`,
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("lexicon", "", "path to the lexicon TOML file (required)")
	checkCmd.Flags().Bool("pattern", false, "print the composite regex")
	_ = checkCmd.MarkFlagRequired("lexicon")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	lexiconPath, _ := cmd.Flags().GetString("lexicon")
	showPattern, _ := cmd.Flags().GetBool("pattern")

	lx, err := lexicon.Load(lexiconPath)
	if err != nil {
		return err
	}
	tok, err := lx.Build()
	if err != nil {
		return err
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d token type(s)\n", len(tok.Types()))
	}
	if showPattern {
		fmt.Fprintln(cmd.OutOrStdout(), tok.Pattern())
	}
	return nil
}
