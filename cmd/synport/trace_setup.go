package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"synport/internal/trace"
)

// setupTracing inspects trace-related flags and attaches a tracer to the
// command context. It returns a cleanup function.
func setupTracing(cmd *cobra.Command) (func(), error) {
	root := cmd.Root()

	traceOutput, err := root.PersistentFlags().GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := root.PersistentFlags().GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	formatStr, err := root.PersistentFlags().GetString("trace-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	modeStr, err := root.PersistentFlags().GetString("trace-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	// --trace without a level means run-level tracing.
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelRun
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, err
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: traceOutput,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	cleanup := func() {
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}

// dumpTraceRing writes the buffered trace events, if the tracer keeps a ring.
func dumpTraceRing(cmd *cobra.Command, out io.Writer) {
	ring, ok := trace.RingOf(trace.FromContext(cmd.Context()))
	if !ok {
		return
	}
	fmt.Fprintln(out, "trace: last events before failure")
	if err := ring.Dump(out, trace.FormatText); err != nil {
		fmt.Fprintf(out, "trace: dump error: %v\n", err)
	}
}
