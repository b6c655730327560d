package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"synport/internal/comments"
	"synport/internal/driver"
	"synport/internal/fsys"
	"synport/internal/progress"
	"synport/internal/source"
)

var commentsCmd = &cobra.Command{
	Use:   "comments [flags] [root]",
	Short: "Rewrite legacy REM{} banners into SYNOR 5000 comment blocks",
	Long: `comments replaces every three-line REM{///...} / REM{text} / REM{///...}
banner in the migrated programs under root with a four-line // banner.
Files without legacy banners are left untouched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runComments,
}

func init() {
	commentsCmd.Flags().Bool("check", false, "list files that still contain legacy banners; exit non-zero if any")
	commentsCmd.Flags().Bool("stdout", false, "print rewritten content to stdout instead of rewriting files")
	commentsCmd.Flags().String("format", "text", "output format (text|json)")
	commentsCmd.Flags().Bool("watch", false, "keep running and rewrite files as they change")
	commentsCmd.Flags().Duration("debounce", driver.DefaultDebounce, "quiet period before a changed file is rewritten (with --watch)")
	commentsCmd.Flags().String("encoding", "utf-8", "text encoding of the files")
	commentsCmd.Flags().String("extension", driver.DefaultOutputExtension, "extension of the files to rewrite")
	commentsCmd.Flags().Int("width", comments.DefaultWidth, "banner width in columns")
	commentsCmd.Flags().Bool("fill", false, "pad the title line with slashes up to --width instead of a fixed 27")
	commentsCmd.Flags().String("ui", "off", "progress UI (auto|on|off)")
}

func runComments(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	check, err := flags.GetBool("check")
	if err != nil {
		return err
	}
	writeToStdout, err := flags.GetBool("stdout")
	if err != nil {
		return err
	}
	outputFormat, err := flags.GetString("format")
	if err != nil {
		return err
	}
	watch, err := flags.GetBool("watch")
	if err != nil {
		return err
	}
	debounce, err := flags.GetDuration("debounce")
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
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	if writeToStdout && check {
		return fmt.Errorf("comments: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("comments: --stdout is only supported with text output")
	}
	if watch && (check || writeToStdout) {
		return fmt.Errorf("comments: --watch cannot be combined with --check or --stdout")
	}
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("comments: unsupported output format %q", outputFormat)
	}

	m, err := manifestFor(cmd)
	if err != nil {
		return err
	}
	settings, err := resolveCommentSettings(cmd, args, m)
	if err != nil {
		return err
	}
	enc, err := source.LookupEncoding(settings.Encoding)
	if err != nil {
		return err
	}
	provider := fsys.OS{Encoding: enc}
	opts := driver.CommentOptions{
		Root:      settings.Root,
		Extension: settings.Extension,
		Options: comments.Options{
			Width:     settings.Width,
			LeadRule:  comments.DefaultLeadRule,
			TrailRule: comments.DefaultTrailRule,
			Fill:      settings.Fill,
		},
		Check:  check,
		Stdout: writeToStdout,
	}

	run := func(ctx context.Context, sink progress.Sink) ([]driver.CommentResult, error) {
		o := opts
		o.Progress = sink
		return driver.RewriteComments(ctx, provider, o)
	}
	var results []driver.CommentResult
	if outputFormat == "text" && !writeToStdout && shouldUseTUI(mode) {
		results, err = runWithUI(cmd.Context(), "rewriting comments in "+source.DisplayPath(settings.Root), 0, run)
	} else {
		results, err = run(cmd.Context(), progress.Nop)
	}
	if err != nil {
		return err
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	var hasErrors, hasChanges bool
	switch {
	case writeToStdout:
		hasErrors = renderCommentsStdout(out, errOut, results)
	case outputFormat == "json":
		if err := renderCommentsJSON(out, results, check); err != nil {
			return err
		}
		hasErrors, hasChanges = commentTotals(results)
	default:
		hasErrors, hasChanges = renderCommentsText(out, errOut, results, check, quiet)
	}

	if watch {
		return watchComments(cmd, provider, opts, debounce, quiet)
	}
	if hasErrors {
		return fmt.Errorf("comments: failed to rewrite some files")
	}
	if check && hasChanges {
		return fmt.Errorf("comments: legacy banners found")
	}
	return nil
}

func watchComments(cmd *cobra.Command, provider fsys.Provider, opts driver.CommentOptions, debounce time.Duration, quiet bool) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	cw, err := driver.NewCommentWatcher(provider, opts, debounce, func(res driver.CommentResult) {
		if res.Err != nil {
			fmt.Fprintf(errOut, "comments: %s: %v\n", source.DisplayPath(res.Path), res.Err)
			return
		}
		if !quiet {
			fmt.Fprintf(out, "Comments replaced in %s\n", source.DisplayPath(res.Path))
		}
	})
	if err != nil {
		return fmt.Errorf("comments: watch: %w", err)
	}
	ctx := cmd.Context()
	if err := cw.Start(ctx); err != nil {
		_ = cw.Stop()
		return fmt.Errorf("comments: watch: %w", err)
	}
	if !quiet {
		fmt.Fprintf(errOut, "watching %s for changes (Ctrl+C to stop)\n", source.DisplayPath(opts.Root))
	}
	select {
	case <-ctx.Done():
	case <-cw.Done():
	}
	return cw.Stop()
}

func commentTotals(results []driver.CommentResult) (hasErrors, hasChanges bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
		}
		if res.Changed {
			hasChanges = true
		}
	}
	return hasErrors, hasChanges
}

func renderCommentsStdout(out, errOut io.Writer, results []driver.CommentResult) (hasErrors bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(errOut, "comments: %s: %v\n", res.Path, res.Err)
			continue
		}
		_, _ = io.WriteString(out, res.Rewritten)
	}
	return hasErrors
}

func renderCommentsText(out, errOut io.Writer, results []driver.CommentResult, check, quiet bool) (hasErrors, hasChanges bool) {
	blocks := 0
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(errOut, "comments: %s: %v\n", source.DisplayPath(res.Path), res.Err)
			continue
		}
		if !res.Changed {
			continue
		}
		hasChanges = true
		blocks += res.Blocks
		if quiet {
			continue
		}
		if check {
			fmt.Fprintln(out, source.DisplayPath(res.Path))
		} else {
			fmt.Fprintf(out, "Comments replaced in %s\n", source.DisplayPath(res.Path))
		}
	}
	if !quiet && !check {
		fmt.Fprintf(out, "%d banners rewritten in %d files\n", blocks, countChanged(results))
	}
	return hasErrors, hasChanges
}

func countChanged(results []driver.CommentResult) int {
	n := 0
	for _, res := range results {
		if res.Changed && res.Err == nil {
			n++
		}
	}
	return n
}

func renderCommentsJSON(out io.Writer, results []driver.CommentResult, check bool) error {
	type jsonResult struct {
		Path     string `json:"path"`
		Blocks   int    `json:"blocks"`
		Changed  bool   `json:"changed"`
		Error    string `json:"error,omitempty"`
		CheckRun bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Blocks: res.Blocks, Changed: res.Changed, CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
