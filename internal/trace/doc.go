// Package trace records what a fmt run did: one span per run, per file and
// per engine pass, with the grammar, line count and checksum difference of
// each file attached when its span ends.
//
// A tracer travels on the context:
//
//	ctx = trace.WithTracer(ctx, t)
//	ctx, span := trace.Start(ctx, trace.ScopeFile, path)
//	defer span.End(err)
//
// The level decides the finest scope kept: run, file or pass. Events go to
// a stream as they happen, to a ring that is dumped on exit, or to both.
// A heartbeat names the file a stuck run is sitting on.
//
//	brace fmt --trace=run.ndjson --trace-level=pass src/
package trace
