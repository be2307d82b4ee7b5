package token

import (
	"cxxtargs/internal/source"
)

// Token represents a single token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsSeparator reports whether the token is '<', '>' or ','.
func (t Token) IsSeparator() bool {
	switch t.Kind {
	case LAngle, RAngle, Comma:
		return true
	default:
		return false
	}
}

// IsText reports whether the token carries text.
func (t Token) IsText() bool { return t.Kind == Text }
