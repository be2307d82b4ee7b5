// Package testkit holds structural checks shared by parser tests and fuzz
// harnesses.
package testkit

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"cxxtargs/internal/bracket"
	"cxxtargs/internal/message"
	"cxxtargs/internal/source"
)

// CheckMessageSpans verifies the spans of a parsed message against its input:
// 1) every span belongs to in and lies within its text
// 2) each span slices out exactly the text stored next to it
// 3) signature, names and values appear in source order
func CheckMessageSpans(m *message.Message, in *source.Input) error {
	if m == nil || in == nil {
		return fmt.Errorf("nil message or input")
	}
	textLen, err := safecast.Conv[uint32](len(in.Text))
	if err != nil {
		return fmt.Errorf("text length overflow: %w", err)
	}

	check := func(what string, sp source.Span, want string) error {
		if sp.Input != in.ID {
			return fmt.Errorf("%s span points to input %d, want %d", what, sp.Input, in.ID)
		}
		if sp.Start > sp.End || sp.End > textLen {
			return fmt.Errorf("%s span %v is outside the text (len %d)", what, sp, textLen)
		}
		if got := in.Slice(sp); got != want {
			return fmt.Errorf("%s span %v covers %q, want %q", what, sp, got, want)
		}
		return nil
	}

	if err := check("signature", m.SignatureSpan, m.Signature); err != nil {
		return err
	}
	prev := m.SignatureSpan
	for i, a := range m.Args {
		if err := check(fmt.Sprintf("arg %d name", i), a.NameSpan, a.Name); err != nil {
			return err
		}
		if err := check(fmt.Sprintf("arg %d value", i), a.ValueSpan, a.ValueText); err != nil {
			return err
		}
		if a.NameSpan.Start < prev.End {
			return fmt.Errorf("arg %d name %v starts before %v ends", i, a.NameSpan, prev)
		}
		if a.ValueSpan.Start < a.NameSpan.End {
			return fmt.Errorf("arg %d value %v starts before its name %v ends", i, a.ValueSpan, a.NameSpan)
		}
		prev = a.ValueSpan
	}
	return nil
}

// CheckNode verifies that every leaf of n is non-empty text without
// brackets, commas or spaces, and that only lists have children.
func CheckNode(n bracket.Node) error {
	var err error
	bracket.Walk(n, func(node bracket.Node, depth int) bool {
		switch {
		case node.IsLeaf() && node.Text == "":
			err = fmt.Errorf("empty leaf at depth %d", depth)
		case node.IsLeaf() && strings.ContainsAny(node.Text, "<>, "):
			err = fmt.Errorf("leaf %q at depth %d contains structural characters", node.Text, depth)
		case node.IsLeaf() && len(node.Children) > 0:
			err = fmt.Errorf("leaf %q at depth %d has children", node.Text, depth)
		case node.IsList() && node.Text != "":
			err = fmt.Errorf("list at depth %d carries text %q", depth, node.Text)
		}
		return err == nil
	})
	return err
}
