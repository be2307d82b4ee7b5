package source

type (
	// InputID identifies an Input within an InputSet.
	InputID uint32
	// InputFlags encodes metadata about an input.
	InputFlags uint8
)

const (
	// InputVirtual marks an input that did not come from a file (argument, test).
	InputVirtual InputFlags = 1 << iota
	InputHadBOM
	InputTrimmedSpace // trailing CR or blanks removed
	InputNormalized // rewritten to NFC
)

// Input is one diagnostic line handed to the parser.
type Input struct {
	ID    InputID
	Name  string // file path, "<stdin>" or "<arg N>"
	Line  uint32 // 1-based line inside Name, 0 if not line oriented
	Text  string
	Flags InputFlags
}

// LineCol is a human-readable position.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, counted in runes
}
