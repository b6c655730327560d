// Package trace records what a migration run is doing: run, directory and
// file spans, plus failure points, written as text or NDJSON.
//
// # Usage
//
//	synport migrate --trace=- --trace-level=dir src out
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Only failure points
//   - LevelRun: Run and pass boundaries
//   - LevelDir: Per-directory work
//   - LevelDebug: Everything including per-file reads and writes
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDir, "dir", parentID)
//	defer span.End("")
package trace
