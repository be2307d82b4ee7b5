// Package fuzztests houses Go fuzz harnesses for the bracket and message
// parsers. They look for panics, hangs and structurally invalid results on
// arbitrary input.
package fuzztests
