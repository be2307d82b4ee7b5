// Package driver runs the parser over CLI inputs: it loads lines into a
// source.InputSet, parses them in parallel and collects diagnostics.
package driver
