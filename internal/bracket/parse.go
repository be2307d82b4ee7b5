package bracket

import (
	"cxxtargs/internal/diag"
	"cxxtargs/internal/lexer"
	"cxxtargs/internal/source"
	"cxxtargs/internal/token"
)

// Options locate the text inside a larger input so error spans point at
// the right bytes. The zero value treats the text as a standalone input.
type Options struct {
	Input  source.InputID
	Offset uint32
}

// frame is one open '<' level: the nodes closed so far and where it began.
type frame struct {
	nodes []Node
	open  source.Span
}

// Parse converts bracket text into a tree. A single top-level node is
// returned as is; anything else, including empty text, is wrapped in a List.
func Parse(text string) (Node, error) {
	return ParseWith(text, Options{})
}

// ParseWith is Parse with span placement options.
func ParseWith(text string, opts Options) (Node, error) {
	lx := lexer.New(text, lexer.Options{Input: opts.Input, Offset: opts.Offset})
	stack := []frame{{}}

	for {
		tok := lx.Next()
		top := &stack[len(stack)-1]

		switch tok.Kind {
		case token.Text:
			top.nodes = append(top.nodes, Leaf(tok.Text))

		case token.LAngle:
			stack = append(stack, frame{open: tok.Span})

		case token.RAngle:
			if len(stack) == 1 {
				return Node{}, diag.Errorf(diag.BracketUnmatchedClose, tok.Span,
					"'>' without a matching '<'")
			}
			closed := List(top.nodes...)
			stack = stack[:len(stack)-1]
			parent := &stack[len(stack)-1]
			parent.nodes = append(parent.nodes, closed)

		case token.Comma:
			// separator only

		case token.EOF:
			if len(stack) > 1 {
				return Node{}, diag.Errorf(diag.BracketUnclosedOpen, top.open,
					"'<' is never closed (%d level(s) open at end of text)", len(stack)-1)
			}
			root := stack[0].nodes
			if len(root) == 1 {
				return root[0], nil
			}
			return List(root...), nil

		default:
			return Node{}, diag.Errorf(diag.UnknownCode, tok.Span, "unexpected token %v", tok.Kind)
		}
	}
}
