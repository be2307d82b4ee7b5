package main

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"cxxtargs/internal/diag"
	"cxxtargs/internal/diagfmt"
	"cxxtargs/internal/driver"
	"cxxtargs/internal/observ"
	"cxxtargs/internal/source"
	"cxxtargs/internal/trace"
	"cxxtargs/internal/version"
)

var parseFormats = []string{"pretty", "tree", "diagram", "json", "yaml", "msgpack"}

var diagFormats = []string{"pretty", "short", "json", "sarif"}

// errParseFailed is returned when at least one message failed; the
// diagnostics have already been printed.
var errParseFailed = errors.New("some messages failed to parse")

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] MESSAGE...",
		Short: "Parse template instantiation messages",
		Long: `Parse splits each message at its "[with" clause and prints the
signature and every template argument as a tree.

With --file, messages are read line by line from a build log ("-" for
stdin). Lines without a "[with" clause are skipped unless --strict.`,
		Example: `  cxxtargs parse 'void f(T) [with T = std::map<int, char>]'
  make 2>&1 | cxxtargs parse --file - --format json`,
		RunE: runParse,
	}
	flags := cmd.Flags()
	flags.String("file", "", "read messages from a file, one per line (- for stdin)")
	flags.Bool("strict", false, "report lines without a [with clause instead of skipping them")
	flags.Bool("report-skipped", false, "list skipped lines as info diagnostics")
	flags.String("format", "pretty", "output format (pretty|tree|diagram|json|yaml|msgpack)")
	flags.Int("indent", 4, "spaces per nesting level in pretty output")
	flags.Int("jobs", 0, "parallel workers (0 = GOMAXPROCS)")
	flags.String("diag-format", "pretty", "diagnostics format on stderr (pretty|short|json|sarif)")
	flags.String("ui", "auto", "progress display for --file (auto|on|off)")
	flags.String("arg", "", "print only the template argument with this name")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	rs, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if !slices.Contains(parseFormats, rs.Output.Format) {
		return fmt.Errorf("unsupported format %q (expected %v)", rs.Output.Format, parseFormats)
	}
	diagFormat, _ := cmd.Flags().GetString("diag-format")
	if !slices.Contains(diagFormats, diagFormat) {
		return fmt.Errorf("unsupported diagnostics format %q (expected %v)", diagFormat, diagFormats)
	}
	mode, err := readUIMode(mustString(cmd, "ui"))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	timer := observ.NewTimer()
	tracer := trace.FromContext(ctx)
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	// load
	loadSpan := trace.Begin(tracer, trace.ScopePass, "load", trace.ParentFrom(ctx))
	loadIdx := timer.Begin("load")
	set := source.NewInputSet()
	filePath := mustString(cmd, "file")
	ids, err := loadInputs(cmd, set, filePath, args)
	if err != nil {
		loadSpan.End(err.Error())
		return err
	}
	timer.EndCount(loadIdx, len(ids), filePath)
	loadSpan.End(fmt.Sprintf("%d inputs", len(ids)))

	// parse
	opts := driver.Options{
		Jobs:           rs.Parse.Jobs,
		SkipUnmarked:   filePath != "" && !rs.Parse.Strict,
		ReportSkipped:  mustBool(cmd, "report-skipped"),
		MaxDiagnostics: rs.Output.MaxDiagnostics,
	}
	parseIdx := timer.Begin("parse")
	var batch *driver.Batch
	if filePath != "" && mode.enabled(errOut, len(ids)) {
		batch, err = runBatchWithUI(ctx, errOut, "parsing "+filePath, set, ids, opts)
	} else {
		batch, err = driver.ParseBatch(ctx, set, ids, opts)
	}
	if err != nil {
		return err
	}
	parsed, failed, skipped := batch.Counts()
	timer.EndCount(parseIdx, len(ids), fmt.Sprintf("%d parsed, %d failed, %d skipped", parsed, failed, skipped))

	if name := mustString(cmd, "arg"); name != "" {
		if err := selectArg(batch, name); err != nil {
			return err
		}
	}

	// render
	renderSpan := trace.Begin(tracer, trace.ScopePass, "render", trace.ParentFrom(ctx))
	renderIdx := timer.Begin("render")
	if err := renderBatch(out, batch, set, rs, terminalWidth(out)); err != nil {
		return err
	}
	if err := renderDiagnostics(errOut, batch.Bag, set, rs, diagFormat, cmd); err != nil {
		return err
	}
	timer.End(renderIdx, rs.Output.Format)
	renderSpan.End("")

	if rs.Output.Timings {
		printTimings(errOut, timer)
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errParseFailed, failed, len(ids))
	}
	return nil
}

// loadInputs reads messages from filePath, or takes args when no file is
// given.
func loadInputs(cmd *cobra.Command, set *source.InputSet, filePath string, args []string) ([]source.InputID, error) {
	switch {
	case filePath != "" && len(args) > 0:
		return nil, errors.New("pass either MESSAGE arguments or --file, not both")
	case filePath != "":
		ids, err := driver.LoadFile(set, appFs, filePath, cmd.InOrStdin())
		if err == nil && len(ids) == 0 {
			err = fmt.Errorf("%s: %s contains no messages", diag.InputEmpty.ID(), filePath)
		}
		return ids, err
	case len(args) > 0:
		return driver.LoadArgs(set, args), nil
	}
	return nil, fmt.Errorf("%s: no input messages (pass MESSAGE arguments or --file)", diag.InputEmpty.ID())
}

func renderDiagnostics(w io.Writer, bag *diag.Bag, set *source.InputSet, rs runSettings, format string, cmd *cobra.Command) error {
	bag.Sort()
	maxDiag := rs.Output.MaxDiagnostics
	switch format {
	case "json":
		if bag.Len() == 0 {
			return nil
		}
		return diagfmt.JSON(w, bag, set, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true, Max: maxDiag})
	case "sarif":
		return diagfmt.Sarif(w, bag, set, diagfmt.SarifRunMeta{
			ToolName:       "cxxtargs",
			ToolVersion:    version.Version,
			InvocationArgs: append([]string{cmd.CommandPath()}, cmd.Flags().Args()...),
		})
	}
	if bag.Len() == 0 {
		return nil
	}
	opts := diagfmt.PrettyOpts{Color: rs.useColor(w), ShowNotes: true, Max: maxDiag}
	if format == "short" || rs.quiet {
		return diagfmt.Short(w, bag, set, opts)
	}
	return diagfmt.Pretty(w, bag, set, opts)
}

func mustBool(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(fmt.Errorf("flag %q: %w", name, err))
	}
	return v
}

func mustString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Errorf("flag %q: %w", name, err))
	}
	return v
}
