package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cxxtargs/internal/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cxxtargs",
		Short: "Split C++ template instantiation messages into argument trees",
		Long: `cxxtargs reads compiler messages such as
  void f(T) [with T = std::vector<int>]
and prints every template argument as a nested tree.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setupProfiling(cmd); err != nil {
				return err
			}
			cleanup, err := setupTracing(cmd)
			if err != nil {
				stopProfiling(cmd)
				return err
			}
			traceCleanup = cleanup
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			runTraceCleanup(false)
			stopProfiling(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "print diagnostics on one line each, without source snippets")
	flags.Bool("timings", false, "print phase timings to stderr")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to show (0 = unlimited)")
	flags.String("config", "", "config file (default: nearest .cxxtargs.toml, then $XDG_CONFIG_HOME/cxxtargs/config.toml)")
	addTraceFlags(root)
	addProfileFlags(root)

	root.AddCommand(newParseCmd(), newBracketsCmd(), newVersionCmd())
	return root
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		runTraceCleanup(true)
		stopProfiling(root)
		var r reported
		if !errors.As(err, &r) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		return 1
	}
	return 0
}

// reported marks an error whose diagnostics were already printed.
type reported struct{ err error }

func (r reported) Error() string { return r.err.Error() }
func (r reported) Unwrap() error { return r.err }

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w, or 0 when unknown.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
