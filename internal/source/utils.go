package source

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

const bom = "\ufeff"

// cleanLine prepares a line read from a log. It strips a UTF-8 BOM and
// trailing whitespace (a CR or blanks after the closing ']'), and rewrites
// the text to NFC so identifiers written with combining marks compare
// equal. Virtual inputs are stored verbatim.
func cleanLine(text string, flags InputFlags) (string, InputFlags) {
	if flags&InputVirtual != 0 {
		return text, 0
	}
	var extra InputFlags
	if strings.HasPrefix(text, bom) {
		text = text[len(bom):]
		extra |= InputHadBOM
	}
	if trimmed := strings.TrimRightFunc(text, unicode.IsSpace); len(trimmed) != len(text) {
		text = trimmed
		extra |= InputTrimmedSpace
	}
	if !norm.NFC.IsNormalString(text) {
		text = norm.NFC.String(text)
		extra |= InputNormalized
	}
	return text, extra
}

// column converts a byte offset into a 1-based rune column.
func column(text string, off uint32) uint32 {
	end := min(int(off), len(text))
	col, err := safecast.Conv[uint32](utf8.RuneCountInString(text[:end]))
	if err != nil {
		panic(fmt.Errorf("column overflow: %w", err))
	}
	return col + 1
}
