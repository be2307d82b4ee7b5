package bracket

import (
	"strings"
)

// String renders the canonical bracket text of n: leaves as their text,
// lists as '<' children joined by ',' '>'. Parse(n.String()) yields a tree
// equal to n for every tree Parse can produce.
func (n Node) String() string {
	var sb strings.Builder
	n.writeTo(&sb)
	return sb.String()
}

func (n Node) writeTo(sb *strings.Builder) {
	switch n.Kind {
	case NodeLeaf:
		sb.WriteString(n.Text)
	case NodeList:
		sb.WriteByte('<')
		for i, child := range n.Children {
			if i > 0 {
				sb.WriteByte(',')
			}
			child.writeTo(sb)
		}
		sb.WriteByte('>')
	}
}

// Leaves counts the leaf nodes of n.
func (n Node) Leaves() int {
	count := 0
	Walk(n, func(node Node, _ int) bool {
		if node.Kind == NodeLeaf {
			count++
		}
		return true
	})
	return count
}

// Depth is 0 for a leaf and 1 + the deepest child for a list.
func (n Node) Depth() int {
	switch n.Kind {
	case NodeList:
		deepest := 0
		for _, child := range n.Children {
			deepest = max(deepest, child.Depth())
		}
		return deepest + 1
	default:
		return 0
	}
}

// Equal reports structural equality.
func (n Node) Equal(other Node) bool {
	if n.Kind != other.Kind {
		return false
	}
	switch n.Kind {
	case NodeLeaf:
		return n.Text == other.Text
	case NodeList:
		if len(n.Children) != len(other.Children) {
			return false
		}
		for i := range n.Children {
			if !n.Children[i].Equal(other.Children[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Walk visits n and its descendants in pre-order. depth is 0 for n. When
// fn returns false the children of that node are skipped.
func Walk(n Node, fn func(node Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	if n.Kind == NodeList {
		for _, child := range n.Children {
			walk(child, depth+1, fn)
		}
	}
}
