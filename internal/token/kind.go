package token

// Kind represents the category of a token.
type Kind uint8

const (
	// Invalid indicates a zero Token.
	Invalid Kind = iota
	// EOF marks the end of the input.
	EOF
	// Text is a run of non-separator characters.
	Text
	// LAngle opens a nested list.
	LAngle // <
	// RAngle closes a nested list.
	RAngle // >
	// Comma separates siblings.
	Comma // ,
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Text:
		return "Text"
	case LAngle:
		return "LAngle"
	case RAngle:
		return "RAngle"
	case Comma:
		return "Comma"
	}
	return "Unknown"
}

// KindOf returns the separator kind for b, or Text.
func KindOf(b byte) Kind {
	switch b {
	case '<':
		return LAngle
	case '>':
		return RAngle
	case ',':
		return Comma
	}
	return Text
}
