package lexer

import (
	"cxxtargs/internal/source"
)

// Options places the lexed text inside a larger input. Spans of produced
// tokens are Offset bytes to the right of their position in the text.
type Options struct {
	Input  source.InputID
	Offset uint32
}
