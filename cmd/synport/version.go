package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"synport/internal/version"
)

const versionTagline = "SYNOR 1200 to SYNOR 5000 program migration"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show synport build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return err
		}
		full, err := cmd.Flags().GetBool("full")
		if err != nil {
			return err
		}
		switch strings.ToLower(format) {
		case "pretty":
			renderVersionPretty(cmd.OutOrStdout(), version.Current(), full)
			return nil
		case "json":
			return renderVersionJSON(cmd.OutOrStdout(), version.Current())
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
		}
	},
}

func init() {
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	versionCmd.Flags().Bool("full", false, "include commit hash and build date")
}

func renderVersionPretty(out io.Writer, info version.Info, full bool) {
	fmt.Fprintf(out, "synport %s: %s\n", version.Colored(), versionTagline)
	if full {
		fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(info.GitCommit))
		fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(info.BuildDate))
	}
}

func renderVersionJSON(out io.Writer, info version.Info) error {
	payload := struct {
		Tool string `json:"tool"`
		version.Info
	}{Tool: "synport", Info: info}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
