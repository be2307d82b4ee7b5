// Package diag defines the error and diagnostic model shared by the parser
// packages and the CLI.
//
// # Errors
//
// Parsing stops at the first problem. The failing package returns an *Error
// carrying a Code and the Span of the offending text. Every Code belongs to
// exactly one Kind, and each Kind has a sentinel so callers can write
//
//	if errors.Is(err, diag.ErrMalformedClause) { ... }
//
// without depending on individual codes.
//
// # Diagnostics
//
// The driver turns errors into Diagnostic records and collects them in a
// Bag, together with informational findings such as skipped log lines.
// Package diag does no formatting or IO; rendering lives in internal/diagfmt.
package diag
