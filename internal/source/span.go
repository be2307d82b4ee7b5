package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Span is a half-open byte range inside one Input.
type Span struct {
	Input InputID
	Start uint32 // inclusive
	End   uint32 // exclusive
}

// MakeSpan builds a span from int offsets, as produced by strings and
// slicing helpers.
func MakeSpan(id InputID, start, end int) Span {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		panic(fmt.Errorf("span start overflow: %w", err))
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		panic(fmt.Errorf("span end overflow: %w", err))
	}
	return Span{Input: id, Start: s, End: e}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.Input, s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
// Spans of different inputs are not merged.
func (s Span) Cover(other Span) Span {
	if s.Input != other.Input {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// ShiftRight moves the span n bytes forward. It is used to lift spans
// computed on a substring back into the coordinates of the whole input.
func (s Span) ShiftRight(n uint32) Span {
	return Span{
		Input: s.Input,
		Start: s.Start + n,
		End:   s.End + n,
	}
}

// ShiftLeft moves the span n bytes back. A shift past offset zero leaves
// the span unchanged.
func (s Span) ShiftLeft(n uint32) Span {
	if n > s.Start {
		return s
	}
	return Span{
		Input: s.Input,
		Start: s.Start - n,
		End:   s.End - n,
	}
}

// In reports whether s is entirely inside outer.
func (s Span) In(outer Span) bool {
	return s.Input == outer.Input && s.Start >= outer.Start && s.End <= outer.End
}

// StartPoint returns the zero-length span at s.Start.
func (s Span) StartPoint() Span {
	return Span{Input: s.Input, Start: s.Start, End: s.Start}
}

// EndPoint returns the zero-length span at s.End.
func (s Span) EndPoint() Span {
	return Span{Input: s.Input, Start: s.End, End: s.End}
}
