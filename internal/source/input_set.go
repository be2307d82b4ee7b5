package source

import (
	"fmt"

	"fortio.org/safecast"
)

// InputSet owns every input of one CLI invocation. Inputs are added before
// parsing starts and are read-only afterwards, so concurrent Get calls are
// safe.
type InputSet struct {
	inputs []Input
}

// NewInputSet creates an empty InputSet.
func NewInputSet() *InputSet {
	return &InputSet{inputs: make([]Input, 0, 4)}
}

// Add stores a line read from name at the given 1-based line number.
func (set *InputSet) Add(name string, line uint32, text string, flags InputFlags) InputID {
	cleaned, extra := cleanLine(text, flags)
	n, err := safecast.Conv[uint32](len(set.inputs))
	if err != nil {
		panic(fmt.Errorf("input count overflow: %w", err))
	}
	id := InputID(n)
	set.inputs = append(set.inputs, Input{
		ID:    id,
		Name:  name,
		Line:  line,
		Text:  cleaned,
		Flags: flags | extra,
	})
	return id
}

// AddVirtual stores an input that has no backing file. Its text is kept
// exactly as given.
func (set *InputSet) AddVirtual(name, text string) InputID {
	return set.Add(name, 0, text, InputVirtual)
}

// Get returns the input for id, or nil if id is unknown.
func (set *InputSet) Get(id InputID) *Input {
	if int(id) >= len(set.inputs) {
		return nil
	}
	return &set.inputs[id]
}

// Len returns the number of inputs.
func (set *InputSet) Len() int {
	return len(set.inputs)
}

// All returns the stored inputs in insertion order. Do not modify.
func (set *InputSet) All() []Input {
	return set.inputs
}

// Resolve maps a span to start and end positions. Single-line inputs report
// their stored line number (or 1).
func (set *InputSet) Resolve(sp Span) (start, end LineCol) {
	in := set.Get(sp.Input)
	if in == nil {
		return LineCol{}, LineCol{}
	}
	line := in.Line
	if line == 0 {
		line = 1
	}
	return LineCol{Line: line, Col: column(in.Text, sp.Start)},
		LineCol{Line: line, Col: column(in.Text, sp.End)}
}

// Slice returns the text covered by sp.
func (in *Input) Slice(sp Span) string {
	start, end := int(sp.Start), int(sp.End)
	if start > len(in.Text) {
		start = len(in.Text)
	}
	if end > len(in.Text) {
		end = len(in.Text)
	}
	if start > end {
		return ""
	}
	return in.Text[start:end]
}

// Location formats name:line:col for the start of sp.
func (set *InputSet) Location(sp Span) string {
	in := set.Get(sp.Input)
	if in == nil {
		return fmt.Sprintf("<unknown>:%s", sp)
	}
	start, _ := set.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", in.Name, start.Line, start.Col)
}
