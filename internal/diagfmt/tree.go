package diagfmt

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"cxxtargs/internal/bracket"
	"cxxtargs/internal/message"
)

// listLabel names list nodes in tree output.
const listLabel = "<>"

// Tree prints each argument as an indented branch tree:
//
//	B
//	└── <>
//	    ├── x
//	    └── y
func Tree(w io.Writer, m *message.Message, opts MessageOpts) error {
	pal := newPalette(opts.Color)
	var sb strings.Builder
	sb.WriteString(pal.signature.Sprint(m.Signature))
	sb.WriteString("\n")
	for _, a := range m.Args {
		sb.WriteString(pal.name.Sprint(a.Name))
		sb.WriteString("\n")
		writeBranch(&sb, a.Value, "", true, pal)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// NodeTree prints one tree in branch form with the root unprefixed.
func NodeTree(w io.Writer, n bracket.Node, opts MessageOpts) error {
	pal := newPalette(opts.Color)
	var sb strings.Builder
	sb.WriteString(nodeLabel(n, pal))
	sb.WriteString("\n")
	writeChildren(&sb, n, "", pal)
	_, err := io.WriteString(w, sb.String())
	return err
}

func nodeLabel(n bracket.Node, pal palette) string {
	if n.IsList() {
		return pal.bracket.Sprint(listLabel)
	}
	return pal.leaf.Sprint(n.Text)
}

func writeBranch(sb *strings.Builder, n bracket.Node, prefix string, last bool, pal palette) {
	branch, next := "├── ", "│   "
	if last {
		branch, next = "└── ", "    "
	}
	sb.WriteString(prefix + branch + nodeLabel(n, pal) + "\n")
	writeChildren(sb, n, prefix+next, pal)
}

func writeChildren(sb *strings.Builder, n bracket.Node, prefix string, pal palette) {
	for i, c := range n.Children {
		writeBranch(sb, c, prefix, i == len(n.Children)-1, pal)
	}
}

type treeNode struct {
	label    string
	children []*treeNode
}

type treeBlock struct {
	lines []string
	width int
	root  int
}

func buildTreeNode(n bracket.Node) *treeNode {
	if n.IsLeaf() {
		return &treeNode{label: n.Text}
	}
	node := &treeNode{label: listLabel}
	for _, c := range n.Children {
		node.children = append(node.children, buildTreeNode(c))
	}
	return node
}

// Diagram prints n as a top-down ASCII drawing. Lines have trailing
// spaces trimmed.
func Diagram(w io.Writer, n bracket.Node) error {
	block := renderTree(buildTreeNode(n))
	var sb strings.Builder
	for _, line := range block.lines {
		sb.WriteString(strings.TrimRight(line, " "))
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// MessageDiagram prints the signature and one Diagram per argument.
func MessageDiagram(w io.Writer, m *message.Message) error {
	if _, err := io.WriteString(w, m.Signature+"\n"); err != nil {
		return err
	}
	for _, a := range m.Args {
		if _, err := io.WriteString(w, "\n"+a.Name+" =\n"); err != nil {
			return err
		}
		if err := Diagram(w, a.Value); err != nil {
			return err
		}
	}
	return nil
}

// padRight pads s with spaces to display width n.
func padRight(s string, n int) string {
	if w := runewidth.StringWidth(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}

// renderTree lays node out above its children, centered over them, with a
// connector row of '/', '|' and '\'. All widths are display widths.
func renderTree(node *treeNode) treeBlock {
	label := node.label
	labelWidth := runewidth.StringWidth(label)

	if len(node.children) == 0 {
		return treeBlock{
			lines: []string{label},
			width: labelWidth,
			root:  labelWidth / 2,
		}
	}

	childBlocks := make([]treeBlock, len(node.children))
	maxChildHeight := 0
	for i, child := range node.children {
		childBlocks[i] = renderTree(child)
		maxChildHeight = max(maxChildHeight, len(childBlocks[i].lines))
	}

	const spacing = 3

	positions := make([]int, len(childBlocks))
	totalWidth := 0
	for i, block := range childBlocks {
		positions[i] = totalWidth + block.root
		totalWidth += block.width
		if i != len(childBlocks)-1 {
			totalWidth += spacing
		}
	}

	childrenCenter := (positions[0] + positions[len(positions)-1]) / 2
	rootPos := labelWidth / 2
	shift := childrenCenter - rootPos

	childPrefix := 0
	if shift < 0 {
		childPrefix = -shift
		for i := range positions {
			positions[i] += childPrefix
		}
		totalWidth += childPrefix
		shift = 0
	} else {
		rootPos += shift
	}

	width := max(totalWidth, shift+labelWidth, rootPos+1)
	rootLine := padRight(strings.Repeat(" ", shift)+label, width)

	connector := []byte(strings.Repeat(" ", width))
	connector[rootPos] = '|'
	for _, pos := range positions {
		switch {
		case pos < rootPos:
			connector[pos] = '/'
		case pos > rootPos:
			connector[pos] = '\\'
		default:
			connector[pos] = '|'
		}
	}

	childLines := make([]string, maxChildHeight)
	for row := 0; row < maxChildHeight; row++ {
		var sb strings.Builder
		sb.WriteString(strings.Repeat(" ", childPrefix))
		for i, block := range childBlocks {
			line := ""
			if row < len(block.lines) {
				line = block.lines[row]
			}
			sb.WriteString(padRight(line, block.width))
			if i != len(childBlocks)-1 {
				sb.WriteString(strings.Repeat(" ", spacing))
			}
		}
		childLines[row] = padRight(sb.String(), width)
	}

	lines := make([]string, 0, 2+len(childLines))
	lines = append(lines, rootLine, string(connector))
	lines = append(lines, childLines...)

	return treeBlock{
		lines: lines,
		width: width,
		root:  rootPos,
	}
}
