package message

import (
	"cxxtargs/internal/bracket"
	"cxxtargs/internal/source"
)

// Arg is one template argument.
type Arg struct {
	Name      string
	Value     bracket.Node
	ValueText string // trimmed source text of the value
	NameSpan  source.Span
	ValueSpan source.Span
}

// Message is a fully parsed diagnostic.
type Message struct {
	Signature     string
	SignatureSpan source.Span
	Args          []Arg
}

// Lookup returns the first argument named name.
func (m *Message) Lookup(name string) (Arg, bool) {
	for _, a := range m.Args {
		if a.Name == name {
			return a, true
		}
	}
	return Arg{}, false
}

// Names returns argument names in source order.
func (m *Message) Names() []string {
	names := make([]string, len(m.Args))
	for i, a := range m.Args {
		names[i] = a.Name
	}
	return names
}
