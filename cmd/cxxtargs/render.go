package main

import (
	"fmt"
	"io"

	"cxxtargs/internal/diag"
	"cxxtargs/internal/diagfmt"
	"cxxtargs/internal/driver"
	"cxxtargs/internal/message"
	"cxxtargs/internal/source"
)

// renderBatch writes the parsed messages of batch to w in rs.Output.Format.
// Text formats print only successful messages; structured formats carry
// every result including errors and skips.
func renderBatch(w io.Writer, batch *driver.Batch, set *source.InputSet, rs runSettings, width int) error {
	if enc, ok := diagfmt.ParseEncoding(rs.Output.Format); ok {
		return diagfmt.Encode(w, enc, batchDoc(batch, set))
	}

	opts := diagfmt.MessageOpts{Color: rs.useColor(w), Indent: rs.Output.Indent, Width: width}
	parsed, _, _ := batch.Counts()
	first := true
	for _, r := range batch.Results {
		if r.Message == nil {
			continue
		}
		if parsed > 1 {
			if !first {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "# %s\n", inputHeader(set.Get(r.Input))); err != nil {
				return err
			}
		}
		first = false

		var err error
		switch rs.Output.Format {
		case "tree":
			err = diagfmt.Tree(w, r.Message, opts)
		case "diagram":
			err = diagfmt.MessageDiagram(w, r.Message)
		default:
			err = diagfmt.Message(w, r.Message, opts)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// selectArg narrows every parsed message of batch to the argument called
// name. Messages without it are left out of the output; it is an error
// when no message has it.
func selectArg(batch *driver.Batch, name string) error {
	found := 0
	for i, r := range batch.Results {
		if r.Message == nil {
			continue
		}
		arg, ok := r.Message.Lookup(name)
		if !ok {
			batch.Results[i].Message = nil
			batch.Results[i].Skipped = true
			continue
		}
		found++
		batch.Results[i].Message = &message.Message{
			Signature:     r.Message.Signature,
			SignatureSpan: r.Message.SignatureSpan,
			Args:          []message.Arg{arg},
		}
	}
	if found == 0 && len(batch.Results) > 0 {
		return fmt.Errorf("no message has a template argument named %q", name)
	}
	return nil
}

func inputHeader(in *source.Input) string {
	if in == nil {
		return "?"
	}
	if in.Line > 0 {
		return fmt.Sprintf("%s:%d", in.Name, in.Line)
	}
	return in.Name
}

func batchDoc(batch *driver.Batch, set *source.InputSet) diagfmt.BatchDoc {
	parsed, failed, skipped := batch.Counts()
	doc := diagfmt.BatchDoc{
		Results: make([]diagfmt.ResultDoc, 0, len(batch.Results)),
		Count:   parsed,
		Failed:  failed,
		Skipped: skipped,
	}
	jsonOpts := diagfmt.JSONOpts{IncludePositions: true}
	for _, r := range batch.Results {
		rd := diagfmt.ResultDoc{Skipped: r.Skipped}
		if in := set.Get(r.Input); in != nil {
			rd.Input = in.Name
			rd.Line = in.Line
		}
		switch {
		case r.Message != nil:
			md := diagfmt.MessageDocOf(r.Message)
			rd.Message = &md
		case r.Err != nil:
			d := diag.NewError(diag.UnknownCode, source.Span{Input: r.Input}, r.Err.Error())
			if de, ok := diag.AsError(r.Err); ok {
				d = de.Diagnostic()
			}
			dj := diagfmt.DiagnosticOf(d, set, jsonOpts)
			rd.Error = &dj
		}
		doc.Results = append(doc.Results, rd)
	}
	return doc
}
