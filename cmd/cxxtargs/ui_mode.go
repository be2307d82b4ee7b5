package main

import (
	"fmt"
	"io"
	"strings"
)

// uiMode selects the batch progress view of "parse --file".
type uiMode uint8

const (
	uiAuto uiMode = iota
	uiOn
	uiOff
)

// uiAutoThreshold is the input count from which auto mode shows progress.
const uiAutoThreshold = 64

var uiModes = map[string]uiMode{"": uiAuto, "auto": uiAuto, "on": uiOn, "off": uiOff}

func readUIMode(value string) (uiMode, error) {
	m, ok := uiModes[strings.TrimSpace(strings.ToLower(value))]
	if !ok {
		return uiAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
	return m, nil
}

// enabled reports whether a batch of n inputs gets the progress view on w.
func (m uiMode) enabled(w io.Writer, n int) bool {
	switch m {
	case uiOn:
		return true
	case uiOff:
		return false
	}
	return n >= uiAutoThreshold && isTerminal(w)
}
