// Package trace records what the calculator pipeline does while it runs.
//
// Tracing is off by default and enabled from the command line:
//
//	calc eval --trace=- --trace-level=detail -f exprs.txt
//
// # Tracers
//
//   - Nop: no-op when tracing is disabled
//   - StreamTracer: writes each event immediately (file or stderr)
//   - RingTracer: keeps the last N events in memory for a dump on failure
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// Every event has a Scope. The Level decides which scopes are emitted:
//
//   - LevelPhase: ScopeDriver and ScopeStage (tokenize, parens, postfix, eval)
//   - LevelDetail: adds ScopeExpr, one span per evaluated expression
//   - LevelDebug: adds ScopeToken, one point per scanned token
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeStage, "postfix", parentID)
//	defer span.End("")
package trace
