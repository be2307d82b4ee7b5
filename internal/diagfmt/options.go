package diagfmt

import "path/filepath"

// PathMode specifies how input names are displayed.
type PathMode uint8

const (
	// PathModeAuto shows names as given on the command line.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures human-readable diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	BaseDir   string // for PathModeRelative
	ShowNotes bool
	Max       int // 0 means unlimited
}

// JSONOpts configures machine-readable diagnostics.
type JSONOpts struct {
	IncludePositions bool // add line/col
	PathMode         PathMode
	BaseDir          string
	Max              int
	IncludeNotes     bool
}

// MessageOpts configures rendering of parsed messages and trees.
type MessageOpts struct {
	Color  bool
	Indent int // spaces per nesting level, default 4
	Width  int // terminal width, 0 if unknown
}

// SarifRunMeta describes the tool run in SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
}

func (o MessageOpts) indent() int {
	if o.Indent <= 0 {
		return 4
	}
	return o.Indent
}

// formatPath renders an input name. Virtual names such as "<arg 1>" are
// left alone.
func formatPath(name string, mode PathMode, base string) string {
	if name == "" || name[0] == '<' {
		return name
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(name); err == nil {
			return abs
		}
	case PathModeRelative:
		abs, err := filepath.Abs(name)
		if err != nil {
			return name
		}
		if base == "" {
			base = "."
		}
		baseAbs, err := filepath.Abs(base)
		if err != nil {
			return name
		}
		if rel, err := filepath.Rel(baseAbs, abs); err == nil {
			return rel
		}
	case PathModeBasename:
		return filepath.Base(name)
	}
	return name
}
