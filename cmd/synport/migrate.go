package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"synport/internal/cache"
	"synport/internal/diag"
	"synport/internal/diagfmt"
	"synport/internal/driver"
	"synport/internal/fsys"
	"synport/internal/observ"
	"synport/internal/progress"
	"synport/internal/source"
	"synport/internal/version"
)

const appName = "synport"

var migrateCmd = &cobra.Command{
	Use:   "migrate [flags] [source] [output]",
	Short: "Convert the newest revision of every legacy program into the SYNOR 5000 format",
	Long: `migrate walks the source tree. In every directory holding legacy programs it
picks the file with the greatest revision identifier (8 digits + 2 capital
letters in the name), keeps everything from the first "TARE :" line, puts it
under the SYNOR 5000 header and writes <name>_merged.txt into the mirrored
directory of the output tree.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().Int("jobs", 0, "max parallel directories (0=auto)")
	migrateCmd.Flags().Bool("dry-run", false, "compute everything but write nothing")
	migrateCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	migrateCmd.Flags().Bool("no-cache", false, "ignore and do not update the migration cache")
	migrateCmd.Flags().String("empty-section", "skip", "when the marker is missing (skip|header-only)")
	migrateCmd.Flags().String("header-file", "", "replace the built-in SYNOR 5000 header")
	migrateCmd.Flags().StringArray("exclude", nil, "skip paths matching this glob, relative to the source (repeatable)")
	migrateCmd.Flags().String("encoding", "utf-8", "text encoding of legacy files (utf-8|windows-1252|iso-8859-1|iso-8859-15)")
	migrateCmd.Flags().String("extension", driver.DefaultExtension, "legacy program extension")
	migrateCmd.Flags().String("suffix", driver.DefaultSuffix, "appended to the output file stem")
	migrateCmd.Flags().String("output-extension", driver.DefaultOutputExtension, "output file extension")
	migrateCmd.Flags().String("marker", "TARE :", "line marker where the test body starts")
	migrateCmd.Flags().Int("max-diagnostics", 0, "stop collecting diagnostics after this many (0=unlimited)")
	migrateCmd.Flags().String("format", "text", "output format (text|json|sarif)")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	quiet, err := root.GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := root.GetBool("timings")
	if err != nil {
		return err
	}
	outputFormat, err := flags.GetString("format")
	if err != nil {
		return err
	}
	if outputFormat != "text" && outputFormat != "json" && outputFormat != "sarif" {
		return fmt.Errorf("migrate: unsupported output format %q", outputFormat)
	}
	dryRun, err := flags.GetBool("dry-run")
	if err != nil {
		return err
	}
	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return err
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	m, err := manifestFor(cmd)
	if err != nil {
		return err
	}
	settings, err := resolveMigrateSettings(cmd, args, m)
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	endSetup := timer.Track("setup")
	opts, provider, err := buildMigrateOptions(settings)
	if err != nil {
		return err
	}
	opts.DryRun = dryRun
	if opts.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return err
	}
	if !noCache && !dryRun {
		c, cacheErr := cache.OpenDefault(appName)
		if cacheErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s cache disabled: %v\n", color.YellowString("warning:"), cacheErr)
		} else {
			opts.Cache = c
		}
	}
	endSetup("")

	var timings progress.Timings
	useUI := outputFormat == "text" && shouldUseTUI(mode)
	run := func(ctx context.Context, sink progress.Sink) (*driver.MigrateReport, error) {
		o := opts
		if showTimings {
			sink = &progress.TimingSink{Timings: &timings, Next: sink}
		}
		o.Progress = sink
		return driver.Migrate(ctx, provider, o)
	}

	endMigrate := timer.Track("migrate")
	var report *driver.MigrateReport
	if useUI {
		report, err = runWithUI(cmd.Context(), "migrating "+source.DisplayPath(settings.Source), 0, run)
	} else {
		report, err = run(cmd.Context(), progress.Nop)
	}
	if report != nil {
		endMigrate(fmt.Sprintf("%d directories", len(report.Results)))
	}
	if err != nil && report == nil {
		return err
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	switch outputFormat {
	case "json":
		if jsonErr := renderMigrateJSON(out, report); jsonErr != nil {
			return jsonErr
		}
	case "sarif":
		if sarifErr := renderMigrateSarif(out, report, os.Args[1:]); sarifErr != nil {
			return sarifErr
		}
	default:
		renderMigrateText(out, errOut, report, quiet, useUI)
	}
	if showTimings {
		printStageTimings(errOut, &timings)
		fmt.Fprint(errOut, timer.Summary())
	}
	if err != nil {
		return err
	}
	if report.Failed > 0 {
		dumpTraceRing(cmd, errOut)
		return fmt.Errorf("migrate: %d of %d directories failed", report.Failed, len(report.Results))
	}
	return nil
}

func buildMigrateOptions(s migrateSettings) (driver.MigrateOptions, fsys.Provider, error) {
	enc, err := source.LookupEncoding(s.Encoding)
	if err != nil {
		return driver.MigrateOptions{}, nil, err
	}
	policy, err := driver.ParseEmptySectionPolicy(s.EmptySection)
	if err != nil {
		return driver.MigrateOptions{}, nil, err
	}
	base := fsys.OS{Encoding: enc}

	var header string
	if s.HeaderFile != "" {
		header, err = base.ReadText(s.HeaderFile)
		if err != nil {
			return driver.MigrateOptions{}, nil, fmt.Errorf("migrate: header file: %w", err)
		}
		if header == "" {
			return driver.MigrateOptions{}, nil, fmt.Errorf("migrate: header file %s is empty", s.HeaderFile)
		}
	}

	provider, err := fsys.Exclude(base, s.Source, s.Exclude)
	if err != nil {
		return driver.MigrateOptions{}, nil, err
	}
	return driver.MigrateOptions{
		Source:          s.Source,
		Output:          s.Output,
		Extension:       s.Extension,
		Suffix:          s.Suffix,
		OutputExtension: s.OutputExtension,
		Marker:          s.Marker,
		Header:          header,
		EmptySection:    policy,
		Jobs:            s.Jobs,
	}, provider, nil
}

func renderMigrateText(out, errOut io.Writer, report *driver.MigrateReport, quiet, usedUI bool) {
	minSeverity := diag.SevInfo
	if quiet {
		minSeverity = diag.SevWarning
	}
	diagfmt.Pretty(errOut, report.Diagnostics, diagfmt.PrettyOpts{Color: !color.NoColor, MinSeverity: minSeverity})

	if !quiet && !usedUI {
		verb := "Merged program written to"
		if report.DryRun {
			verb = "Would write"
		}
		for _, res := range report.Results {
			if res.Status == driver.StatusMigrated {
				fmt.Fprintf(out, "%s %s\n", verb, source.DisplayPath(res.Output))
			}
		}
	}

	summary := fmt.Sprintf("migrated %s, unchanged %d, skipped %s, failed %s",
		color.GreenString("%d", report.Migrated),
		report.Unchanged,
		countColor(report.Skipped, color.YellowString),
		countColor(report.Failed, color.RedString))
	if report.DryRun {
		summary += " (dry run)"
	}
	fmt.Fprintln(out, summary)
}

func countColor(n int, paint func(string, ...interface{}) string) string {
	if n == 0 {
		return "0"
	}
	return paint("%d", n)
}

func renderMigrateJSON(out io.Writer, report *driver.MigrateReport) error {
	type jsonResult struct {
		driver.DirResult
		Error string `json:"error,omitempty"`
	}
	payload := struct {
		*driver.MigrateReport
		Results     []jsonResult             `json:"results"`
		Diagnostics []diagfmt.DiagnosticJSON `json:"diagnostics"`
	}{MigrateReport: report}
	for _, res := range report.Results {
		jr := jsonResult{DirResult: res}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload.Results = append(payload.Results, jr)
	}
	payload.Diagnostics = diagfmt.BuildDiagnosticsOutput(report.Diagnostics, diagfmt.JSONOpts{PathMode: diagfmt.PathModeAbsolute}).Diagnostics

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func renderMigrateSarif(out io.Writer, report *driver.MigrateReport, args []string) error {
	return diagfmt.Sarif(out, report.Diagnostics, diagfmt.SarifRunMeta{
		ToolName:       appName,
		ToolVersion:    version.Version,
		InvocationArgs: args,
		PathMode:       diagfmt.PathModeRelative,
		BaseDir:        report.Source,
	})
}
