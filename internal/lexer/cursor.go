package lexer

import (
	"fmt"

	"fortio.org/safecast"
)

// Cursor is a byte position inside the text being lexed.
type Cursor struct {
	Text  string
	Off   uint32
	Limit uint32 // exclusive upper bound for Off
}

// NewCursor creates a cursor at the start of text.
func NewCursor(text string) Cursor {
	limit, err := safecast.Conv[uint32](len(text))
	if err != nil {
		panic(fmt.Errorf("text length overflow: %w", err))
	}
	return Cursor{Text: text, Limit: limit}
}

// EOF reports whether the cursor reached the end of the text.
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek returns the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Text[c.Off]
}

// Bump advances by one byte and returns the byte it moved over.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Text[c.Off]
	c.Off++
	return b
}

// Mark is a saved cursor position.
type Mark uint32

// Mark saves the current position.
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// Reset moves the cursor back to m.
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}
