package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cxxtargs/internal/diag"
	"cxxtargs/internal/source"
)

type palette struct {
	sev      map[diag.Severity]*color.Color
	path     *color.Color
	code     *color.Color
	gutter   *color.Color
	caret    *color.Color
	note     *color.Color
	name     *color.Color
	leaf     *color.Color
	bracket  *color.Color
	signature *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError: color.New(color.FgRed, color.Bold),
			diag.SevInfo:  color.New(color.FgCyan, color.Bold),
		},
		path:     color.New(color.Bold),
		code:     color.New(color.FgMagenta),
		gutter:   color.New(color.FgBlue),
		caret:    color.New(color.FgGreen, color.Bold),
		note:     color.New(color.FgCyan),
		name:     color.New(color.FgYellow, color.Bold),
		leaf:     color.New(color.FgGreen),
		bracket:  color.New(color.FgHiBlack),
		signature: color.New(color.Bold),
	}
	for _, c := range p.all() {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) all() []*color.Color {
	out := []*color.Color{p.path, p.code, p.gutter, p.caret, p.note, p.name, p.leaf, p.bracket, p.signature}
	for _, c := range p.sev {
		out = append(out, c)
	}
	return out
}

// Pretty renders bag for humans. Items are printed in bag order; call
// bag.Sort first for stable output. Each diagnostic becomes
//
//	<name>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the input line and a ^~~~ underline of the primary span.
func Pretty(w io.Writer, bag *diag.Bag, set *source.InputSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	items := bag.Items()
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}
	for _, d := range items {
		if err := prettyOne(w, d, set, opts, pal); err != nil {
			return err
		}
	}
	if hidden := bag.Len() - len(items); hidden > 0 {
		if _, err := fmt.Fprintf(w, "... %d more diagnostic(s) not shown\n", hidden); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d diag.Diagnostic, set *source.InputSet, opts PrettyOpts, pal palette) error {
	var sb strings.Builder
	sb.WriteString(pal.path.Sprint(location(set, d.Primary, opts.PathMode, opts.BaseDir)))
	sb.WriteString(": ")
	sb.WriteString(pal.sev[d.Severity].Sprint(d.Severity.String()))
	sb.WriteString(" ")
	sb.WriteString(pal.code.Sprint(d.Code.ID()))
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	sb.WriteString("\n")

	writeSnippet(&sb, set, d.Primary, pal)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(&sb, "  %s %s: %s\n", pal.note.Sprint("note:"),
				location(set, n.Span, opts.PathMode, opts.BaseDir), n.Msg)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func location(set *source.InputSet, sp source.Span, mode PathMode, base string) string {
	in := set.Get(sp.Input)
	if in == nil {
		return set.Location(sp)
	}
	start, _ := set.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(in.Name, mode, base), start.Line, start.Col)
}

// writeSnippet prints the input line under a line-number gutter and marks
// sp with a caret followed by tildes. Widths are display widths so wide
// runes stay aligned.
func writeSnippet(sb *strings.Builder, set *source.InputSet, sp source.Span, pal palette) {
	in := set.Get(sp.Input)
	if in == nil {
		return
	}
	line := in.Line
	if line == 0 {
		line = 1
	}
	gutter := fmt.Sprintf("%5d | ", line)
	blank := strings.Repeat(" ", len(gutter)-2) + "| "

	sb.WriteString(pal.gutter.Sprint(gutter))
	sb.WriteString(displayText(in.Text))
	sb.WriteString("\n")

	pad, width := underline(in, sp)
	sb.WriteString(pal.gutter.Sprint(blank))
	sb.WriteString(strings.Repeat(" ", pad))
	sb.WriteString(pal.caret.Sprint("^" + strings.Repeat("~", width-1)))
	sb.WriteString("\n")
}

// displayText shows tabs as single spaces so caret columns line up.
func displayText(s string) string {
	return strings.ReplaceAll(s, "\t", " ")
}

// underline returns the display column of sp.Start and the marker width,
// at least 1 so empty spans still get a caret.
func underline(in *source.Input, sp source.Span) (pad, width int) {
	before := in.Slice(source.Span{Input: sp.Input, Start: 0, End: sp.Start})
	covered := in.Slice(sp)
	pad = runewidth.StringWidth(displayText(before))
	width = max(runewidth.StringWidth(displayText(covered)), 1)
	return pad, width
}
