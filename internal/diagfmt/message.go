package diagfmt

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cxxtargs/internal/bracket"
	"cxxtargs/internal/message"
)

var signatureBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("4")).
	Padding(0, 1)

// renderSignature boxes the signature on color terminals, wrapped to
// opts.Width when known.
func renderSignature(sig string, opts MessageOpts, pal palette) string {
	if !opts.Color {
		return sig
	}
	style := signatureBox
	if opts.Width > 4 {
		style = style.Width(opts.Width - 2)
	}
	return style.Render(pal.signature.Sprint(sig))
}

// Message prints the signature, then every argument name followed by its
// value tree and a blank line.
func Message(w io.Writer, m *message.Message, opts MessageOpts) error {
	pal := newPalette(opts.Color)
	var sb strings.Builder
	sb.WriteString(renderSignature(m.Signature, opts, pal))
	sb.WriteString("\n")
	for _, a := range m.Args {
		sb.WriteString(pal.name.Sprint(a.Name))
		sb.WriteString("\n")
		writeNode(&sb, a.Value, 0, opts.indent(), pal)
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Node prints a single tree: lists as a '<' line, children indented one
// level, and a '>' line; leaves on their own line.
func Node(w io.Writer, n bracket.Node, opts MessageOpts) error {
	var sb strings.Builder
	writeNode(&sb, n, 0, opts.indent(), newPalette(opts.Color))
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeNode(sb *strings.Builder, n bracket.Node, depth, step int, pal palette) {
	prefix := strings.Repeat(" ", depth*step)
	switch n.Kind {
	case bracket.NodeList:
		sb.WriteString(prefix + pal.bracket.Sprint("<") + "\n")
		for _, c := range n.Children {
			writeNode(sb, c, depth+1, step, pal)
		}
		sb.WriteString(prefix + pal.bracket.Sprint(">") + "\n")
	default:
		sb.WriteString(prefix + pal.leaf.Sprint(n.Text) + "\n")
	}
}
