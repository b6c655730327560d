package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"synport/internal/prof"
	"synport/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "synport",
	Short: "Migrate SYNOR 1200 test programs to the SYNOR 5000 format",
	Long: `synport picks the newest revision of every legacy test program in a
directory tree, keeps its test body and writes it under the SYNOR 5000
header into a mirrored output tree. The comments command rewrites the
legacy REM{} banners of migrated programs.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupRoot,
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(commentsCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("config", "", "path to synport.toml (default: search upward from the working directory)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|run|dir|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both); ring is dumped when items fail")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")
}

// main executes the root command; any error exits with status 1.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	runCleanup()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// cleanups run after the command, even when it failed.
var cleanups []func()

func runCleanup() {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	cleanups = nil
}

func setupRoot(cmd *cobra.Command, _ []string) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	if err := applyColorMode(mode); err != nil {
		return err
	}
	if err := setupProfiling(cmd); err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, cleanup)
	return nil
}

func setupProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpuprofile"); err != nil {
		return err
	}
	if opts.Mem, err = flags.GetString("memprofile"); err != nil {
		return err
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return err
	}
	if !opts.Enabled() {
		return nil
	}
	session, err := prof.Start(opts)
	if err != nil {
		return err
	}
	errOut := cmd.ErrOrStderr()
	cleanups = append(cleanups, func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(errOut, "%s %v\n", color.YellowString("warning:"), err)
		}
	})
	return nil
}

func applyColorMode(mode string) error {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		color.NoColor = !isTerminal(os.Stdout)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
