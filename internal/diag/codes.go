package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// bracket text
	BracketInfo           Code = 1000
	BracketUnmatchedClose Code = 1001
	BracketUnclosedOpen   Code = 1002

	// with-clause
	ClauseInfo         Code = 2000
	ClauseMissingWith  Code = 2001
	ClauseMissingClose Code = 2002
	ClauseTooFewFields Code = 2003

	// input handling
	InputInfo        Code = 3000
	InputSkippedLine Code = 3001
	InputEmpty       Code = 3002
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	BracketInfo:           "Bracket information",
	BracketUnmatchedClose: "Unmatched closing angle bracket",
	BracketUnclosedOpen:   "Unclosed angle bracket",
	ClauseInfo:            "Clause information",
	ClauseMissingWith:     "Missing [with clause",
	ClauseMissingClose:    "With-clause does not end with ]",
	ClauseTooFewFields:    "With-clause has no name=value pair",
	InputInfo:             "Input information",
	InputSkippedLine:      "Line has no [with clause",
	InputEmpty:            "No input messages",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("BRK%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("CLS%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("INP%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Kind returns the error kind the code belongs to. Informational codes have
// KindNone.
func (c Code) Kind() Kind {
	switch c {
	case BracketUnmatchedClose, BracketUnclosedOpen:
		return MalformedBracketStructure
	case ClauseMissingWith:
		return MissingWithClause
	case ClauseMissingClose, ClauseTooFewFields:
		return MalformedClause
	}
	return KindNone
}
