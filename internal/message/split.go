package message

import (
	"strings"
	"unicode"

	"cxxtargs/internal/bracket"
	"cxxtargs/internal/diag"
	"cxxtargs/internal/source"
)

// Marker opens the template argument clause.
const Marker = "[with"

// Options place the message inside an InputSet for error spans.
type Options struct {
	Input source.InputID
}

// Pair is a name and its still unparsed value text.
type Pair struct {
	Name      string
	Value     string
	NameSpan  source.Span
	ValueSpan source.Span
}

// Clause is the textual split of a message, before values are parsed.
type Clause struct {
	Signature     string
	SignatureSpan source.Span
	Pairs         []Pair
}

// piece is a substring together with its byte offset in the message.
type piece struct {
	text string
	off  int
}

func (p piece) trim() piece {
	lead := len(p.text) - len(strings.TrimLeftFunc(p.text, unicode.IsSpace))
	return piece{
		text: strings.TrimRightFunc(p.text[lead:], unicode.IsSpace),
		off:  p.off + lead,
	}
}

func (p piece) span(id source.InputID) source.Span {
	return source.MakeSpan(id, p.off, p.off+len(p.text))
}

// Split separates the signature from the with-clause and recovers the
// ordered name/value pairs.
func Split(text string, opts Options) (*Clause, error) {
	id := opts.Input
	at := strings.Index(text, Marker)
	if at < 0 {
		return nil, diag.Errorf(diag.ClauseMissingWith, source.MakeSpan(id, 0, len(text)),
			"no %q marker in message", Marker)
	}

	sig := piece{text: text[:at], off: 0}.trim()
	clause := piece{text: text[at+len(Marker):], off: at + len(Marker)}

	end := len(clause.text)
	if !strings.HasSuffix(clause.text, "]") {
		return nil, diag.Errorf(diag.ClauseMissingClose, source.MakeSpan(id, clause.off+end, clause.off+end),
			"with-clause must end with ']'")
	}
	body := piece{text: clause.text[:end-1], off: clause.off}

	fields := splitFields(body)
	if len(fields) < 2 {
		return nil, diag.Errorf(diag.ClauseTooFewFields, body.trim().span(id),
			"with-clause has no name=value pair")
	}

	pairs := make([]Pair, 0, len(fields)-1)
	name := fields[0]
	for _, f := range fields[1 : len(fields)-1] {
		value, next := splitInterior(f)
		pairs = append(pairs, makePair(id, name, value))
		name = next
	}
	pairs = append(pairs, makePair(id, name, fields[len(fields)-1]))

	return &Clause{
		Signature:     sig.text,
		SignatureSpan: sig.span(id),
		Pairs:         pairs,
	}, nil
}

// splitFields cuts body at every '='.
func splitFields(body piece) []piece {
	var fields []piece
	start := 0
	for i := 0; i < len(body.text); i++ {
		if body.text[i] == '=' {
			fields = append(fields, piece{text: body.text[start:i], off: body.off + start})
			start = i + 1
		}
	}
	return append(fields, piece{text: body.text[start:], off: body.off + start})
}

// splitInterior splits a "value,name" field at its last comma. Without a
// comma the whole field is the next name and the value is empty.
func splitInterior(f piece) (value, name piece) {
	comma := strings.LastIndexByte(f.text, ',')
	if comma < 0 {
		return piece{text: "", off: f.off}, f
	}
	return piece{text: f.text[:comma], off: f.off},
		piece{text: f.text[comma+1:], off: f.off + comma + 1}
}

func makePair(id source.InputID, name, value piece) Pair {
	name, value = name.trim(), value.trim()
	return Pair{
		Name:      name.text,
		Value:     value.text,
		NameSpan:  name.span(id),
		ValueSpan: value.span(id),
	}
}

// Parse parses the pair's value text into a tree.
func (p Pair) Parse() (Arg, error) {
	node, err := bracket.ParseWith(p.Value, bracket.Options{
		Input:  p.ValueSpan.Input,
		Offset: p.ValueSpan.Start,
	})
	if err != nil {
		return Arg{}, err
	}
	return Arg{
		Name:      p.Name,
		Value:     node,
		ValueText: p.Value,
		NameSpan:  p.NameSpan,
		ValueSpan: p.ValueSpan,
	}, nil
}

// PairParser turns one pair into an argument.
type PairParser func(Pair) (Arg, error)

// Resolve parses every pair value. The first failure aborts.
func (c *Clause) Resolve() (*Message, error) {
	return c.ResolveWith(Pair.Parse)
}

// ResolveWith is Resolve with a caller supplied parser, called once per
// pair in source order.
func (c *Clause) ResolveWith(parse PairParser) (*Message, error) {
	args := make([]Arg, 0, len(c.Pairs))
	for _, p := range c.Pairs {
		arg, err := parse(p)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return &Message{
		Signature:     c.Signature,
		SignatureSpan: c.SignatureSpan,
		Args:          args,
	}, nil
}
