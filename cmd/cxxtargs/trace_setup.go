package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cxxtargs/internal/trace"
)

// traceCleanup flushes the tracer of the running command. It is reset
// after use so the error path and PersistentPostRun never both run it.
var traceCleanup func(failed bool)

func runTraceCleanup(failed bool) {
	if traceCleanup != nil {
		traceCleanup(failed)
		traceCleanup = nil
	}
}

func addTraceFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "events kept in ring mode")
}

// setupTracing attaches the tracer described by the trace flags to the
// command context and returns a function that flushes it. On failure the
// ring buffer, if any, is dumped to stderr.
func setupTracing(cmd *cobra.Command) (func(failed bool), error) {
	flags := cmd.Root().PersistentFlags()

	traceOutput, err := flags.GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	formatStr, err := flags.GetString("trace-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	// --trace alone means phase level
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(ctx, trace.Nop))
		return func(bool) {}, nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, err
	}

	cfg := trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: traceOutput,
		RingSize:   ringSize,
		Fs:         appFs,
	}
	if traceOutput == "" || traceOutput == "-" {
		cfg.Output = cmd.ErrOrStderr()
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	root := trace.Begin(tracer, trace.ScopeDriver, cmd.Name(), 0)
	ctx = trace.WithParent(trace.WithTracer(ctx, tracer), root)
	cmd.SetContext(ctx)

	errOut := cmd.ErrOrStderr()
	return func(failed bool) {
		detail := ""
		if failed {
			detail = "failed"
		}
		root.End(detail)
		if failed {
			dumpRing(tracer, errOut)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(errOut, "trace: close error: %v\n", err)
		}
	}, nil
}

// dumpRing writes the ring buffer of ring or both mode tracers to w.
func dumpRing(tracer trace.Tracer, w io.Writer) {
	var ring *trace.RingTracer
	switch t := tracer.(type) {
	case *trace.RingTracer:
		ring = t
	case *trace.MultiTracer:
		r, ok := t.Ring()
		if !ok {
			return
		}
		ring = r
	default:
		return
	}
	fmt.Fprintln(w, "trace: last events before failure")
	if err := ring.Dump(w, trace.FormatText); err != nil {
		fmt.Fprintf(w, "trace: dump error: %v\n", err)
	}
}
