package bracket

// NodeKind tags the variant held by a Node.
type NodeKind uint8

const (
	// NodeLeaf holds a non-empty text token.
	NodeLeaf NodeKind = iota + 1
	// NodeList holds an ordered, possibly empty, sequence of nodes.
	NodeList
)

func (k NodeKind) String() string {
	switch k {
	case NodeLeaf:
		return "leaf"
	case NodeList:
		return "list"
	}
	return "invalid"
}

// Node is a Leaf or a List. Consumers switch on Kind; only Text is set for
// leaves and only Children for lists.
type Node struct {
	Kind     NodeKind
	Text     string
	Children []Node
}

// Leaf returns a leaf node.
func Leaf(text string) Node {
	return Node{Kind: NodeLeaf, Text: text}
}

// List returns a list node with the given children. A nil slice is stored
// as an empty list.
func List(children ...Node) Node {
	if children == nil {
		children = []Node{}
	}
	return Node{Kind: NodeList, Children: children}
}

func (n Node) IsLeaf() bool { return n.Kind == NodeLeaf }
func (n Node) IsList() bool { return n.Kind == NodeList }
