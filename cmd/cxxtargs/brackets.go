package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"cxxtargs/internal/diag"
	"cxxtargs/internal/diagfmt"
	"cxxtargs/internal/driver"
	"cxxtargs/internal/source"
)

var bracketFormats = []string{"pretty", "tree", "diagram", "canonical", "tokens", "tokens-json", "json", "yaml", "msgpack"}

func newBracketsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brackets [flags] TEXT",
		Short: "Parse one bracket expression such as std::map<int, char>",
		Long: `Brackets parses a single argument value without a [with clause and
prints its tree. Several arguments are joined with spaces.`,
		Example: `  cxxtargs brackets 'std::map<int, std::vector<char>>' --format tree`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runBrackets,
	}
	flags := cmd.Flags()
	flags.String("format", "pretty", "output format (pretty|tree|diagram|canonical|tokens|tokens-json|json|yaml|msgpack)")
	flags.Int("indent", 4, "spaces per nesting level in pretty output")
	return cmd
}

func runBrackets(cmd *cobra.Command, args []string) error {
	rs, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	format := rs.Output.Format
	if !slices.Contains(bracketFormats, format) {
		return fmt.Errorf("unsupported format %q (expected %v)", format, bracketFormats)
	}

	set := source.NewInputSet()
	id := set.AddVirtual("<arg 1>", strings.Join(args, " "))
	res := driver.ParseBrackets(cmd.Context(), set, id)
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	// tokens are printed even when the tree fails
	switch format {
	case "tokens":
		if err := diagfmt.FormatTokensPretty(out, res.Tokens, set); err != nil {
			return err
		}
	case "tokens-json":
		if err := diagfmt.FormatTokensJSON(out, res.Tokens); err != nil {
			return err
		}
	}

	if res.Err != nil {
		bag := diag.NewBag(1)
		diag.ReportErr(diag.BagReporter{Bag: bag}, res.Err, source.Span{Input: id})
		opts := diagfmt.PrettyOpts{Color: rs.useColor(errOut), ShowNotes: true}
		if rs.quiet {
			err = diagfmt.Short(errOut, bag, set, opts)
		} else {
			err = diagfmt.Pretty(errOut, bag, set, opts)
		}
		if err != nil {
			return err
		}
		return reported{res.Err}
	}

	return renderBrackets(out, res, rs, terminalWidth(out))
}

func renderBrackets(w io.Writer, res driver.BracketsResult, rs runSettings, width int) error {
	format := rs.Output.Format
	if enc, ok := diagfmt.ParseEncoding(format); ok {
		return diagfmt.Encode(w, enc, diagfmt.NodeValue(res.Node))
	}
	opts := diagfmt.MessageOpts{Color: rs.useColor(w), Indent: rs.Output.Indent, Width: width}
	switch format {
	case "tree":
		return diagfmt.NodeTree(w, res.Node, opts)
	case "diagram":
		return diagfmt.Diagram(w, res.Node)
	case "canonical":
		_, err := fmt.Fprintln(w, res.Node.String())
		return err
	case "tokens", "tokens-json":
		return nil
	default:
		return diagfmt.Node(w, res.Node, opts)
	}
}
