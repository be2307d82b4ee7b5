package diagfmt

import (
	"fmt"
	"io"

	"cxxtargs/internal/diag"
	"cxxtargs/internal/source"
)

// Short prints one line per diagnostic without source snippets.
func Short(w io.Writer, bag *diag.Bag, set *source.InputSet, opts PrettyOpts) error {
	items := bag.Items()
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}
	for _, d := range items {
		_, err := fmt.Fprintf(w, "%s: %s %s: %s\n",
			location(set, d.Primary, opts.PathMode, opts.BaseDir),
			d.Severity, d.Code.ID(), d.Message)
		if err != nil {
			return err
		}
	}
	return nil
}
