package diagfmt

import (
	"encoding/json"
	"io"

	"cxxtargs/internal/diag"
	"cxxtargs/internal/source"
)

// LocationJSON is a span in machine-readable output.
type LocationJSON struct {
	File      string `json:"file" yaml:"file" msgpack:"file"`
	StartByte uint32 `json:"start_byte" yaml:"start_byte" msgpack:"start_byte"`
	EndByte   uint32 `json:"end_byte" yaml:"end_byte" msgpack:"end_byte"`
	Line      uint32 `json:"line,omitempty" yaml:"line,omitempty" msgpack:"line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty" yaml:"start_col,omitempty" msgpack:"start_col,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty" yaml:"end_col,omitempty" msgpack:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message" yaml:"message" msgpack:"message"`
	Location LocationJSON `json:"location" yaml:"location" msgpack:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity" yaml:"severity" msgpack:"severity"`
	Code     string       `json:"code" yaml:"code" msgpack:"code"`
	Kind     string       `json:"kind,omitempty" yaml:"kind,omitempty" msgpack:"kind,omitempty"`
	Message  string       `json:"message" yaml:"message" msgpack:"message"`
	Location LocationJSON `json:"location" yaml:"location" msgpack:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty" yaml:"notes,omitempty" msgpack:"notes,omitempty"`
}

// DiagnosticsOutput is the root of JSON diagnostics output.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics" yaml:"diagnostics" msgpack:"diagnostics"`
	Count       int              `json:"count" yaml:"count" msgpack:"count"`
}

func makeLocation(sp source.Span, set *source.InputSet, opts JSONOpts) LocationJSON {
	loc := LocationJSON{
		StartByte: sp.Start,
		EndByte:   sp.End,
	}
	if in := set.Get(sp.Input); in != nil {
		loc.File = formatPath(in.Name, opts.PathMode, opts.BaseDir)
	}
	if opts.IncludePositions {
		start, end := set.Resolve(sp)
		loc.Line = start.Line
		loc.StartCol = start.Col
		loc.EndCol = end.Col
	}
	return loc
}

// DiagnosticOf converts one diagnostic.
func DiagnosticOf(d diag.Diagnostic, set *source.InputSet, opts JSONOpts) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Location: makeLocation(d.Primary, set, opts),
	}
	if k := d.Code.Kind(); k != diag.KindNone {
		out.Kind = k.String()
	}
	if opts.IncludeNotes && len(d.Notes) > 0 {
		out.Notes = make([]NoteJSON, len(d.Notes))
		for i, n := range d.Notes {
			out.Notes[i] = NoteJSON{Message: n.Msg, Location: makeLocation(n.Span, set, opts)}
		}
	}
	return out
}

// BuildDiagnosticsOutput converts bag without serializing it.
func BuildDiagnosticsOutput(bag *diag.Bag, set *source.InputSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, len(items))}
	for _, d := range items {
		out.Diagnostics = append(out.Diagnostics, DiagnosticOf(d, set, opts))
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes bag as an indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, set *source.InputSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, set, opts))
}
