// Package trace records what the cxxtargs driver is doing.
//
// Tracing is off by default. The CLI turns it on with
//
//	cxxtargs parse --trace=- --trace-level=detail --file build.log
//
// # Tracers
//
//   - Nop: disabled tracing, zero cost
//   - StreamTracer: writes each event as it happens
//   - RingTracer: keeps the most recent events for a dump on failure
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// Every event carries a Scope. The Level decides which scopes are kept:
// LevelPhase keeps driver and pass spans, LevelDetail adds per-input
// spans and LevelDebug adds one span per template argument.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "split", parentID)
//	defer span.End("")
package trace
