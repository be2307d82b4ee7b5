package diag

import "errors"

// Kind groups codes into the failure classes callers branch on.
type Kind uint8

const (
	KindNone Kind = iota
	// MissingWithClause: the message has no "[with" marker.
	MissingWithClause
	// MalformedClause: no trailing ']' or no name=value pair.
	MalformedClause
	// MalformedBracketStructure: unbalanced '<' / '>' in a value.
	MalformedBracketStructure
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case MissingWithClause:
		return "MissingWithClause"
	case MalformedClause:
		return "MalformedClause"
	case MalformedBracketStructure:
		return "MalformedBracketStructure"
	}
	return "Unknown"
}

// Sentinels for errors.Is. *Error values match the sentinel of their Kind.
var (
	ErrMissingWithClause         = errors.New("missing [with clause")
	ErrMalformedClause           = errors.New("malformed with-clause")
	ErrMalformedBracketStructure = errors.New("malformed bracket structure")
)

// Sentinel returns the sentinel error of k, or nil for KindNone.
func (k Kind) Sentinel() error {
	switch k {
	case MissingWithClause:
		return ErrMissingWithClause
	case MalformedClause:
		return ErrMalformedClause
	case MalformedBracketStructure:
		return ErrMalformedBracketStructure
	}
	return nil
}
