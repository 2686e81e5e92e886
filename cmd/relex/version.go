package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"relex/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show relex build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().Bool("hash", false, "include git commit hash")
	versionCmd.Flags().Bool("date", false, "include build timestamp")
	versionCmd.Flags().Bool("full", false, "include all build metadata")
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	full, _ := cmd.Flags().GetBool("full")
	withHash, _ := cmd.Flags().GetBool("hash")
	withDate, _ := cmd.Flags().GetBool("date")
	withHash = withHash || full
	withDate = withDate || full

	out := cmd.OutOrStdout()
	format, _ := cmd.Flags().GetString("format")
	switch strings.ToLower(format) {
	case "json":
		return writeVersionJSON(out, withHash, withDate)
	case "pretty":
		writeVersionPretty(out, withHash, withDate)
		return nil
	}
	return fmt.Errorf("unknown format: %s", format)
}

func writeVersionPretty(out io.Writer, withHash, withDate bool) {
	fmt.Fprintf(out, "relex %s\n", releaseVersion())
	if withHash {
		fmt.Fprintf(out, "commit: %s\n", buildField(version.GitCommit))
	}
	if withDate {
		fmt.Fprintf(out, "built:  %s\n", buildField(version.BuildDate))
	}
}

func writeVersionJSON(out io.Writer, withHash, withDate bool) error {
	payload := struct {
		Tool      string `json:"tool"`
		Version   string `json:"version"`
		GitCommit string `json:"git_commit,omitempty"`
		BuildDate string `json:"build_date,omitempty"`
	}{Tool: "relex", Version: releaseVersion()}
	if withHash {
		payload.GitCommit = buildField(version.GitCommit)
	}
	if withDate {
		payload.BuildDate = buildField(version.BuildDate)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func releaseVersion() string {
	if v := strings.TrimSpace(version.Version); v != "" {
		return v
	}
	return "dev"
}

// buildField normalizes ldflags-injected metadata, which is empty on plain
// `go build`.
func buildField(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}
