// Package trace records what the checker core does to models and instances.
//
// Tracing is off by default (Nop). A Tracer is attached to a context and
// picked up by the driver and the checker:
//
//	ctx = trace.WithTracer(ctx, tr)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeModel, "finalize:List", parentID)
//	defer span.End("")
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: internal-consistency failures only
//   - LevelPhase: compilation unit boundaries
//   - LevelDetail: model events (finalize, signature acquisition)
//   - LevelDebug: instance events (instantiate, materialize, rewrite)
//
// # Sinks
//
// StreamTracer writes one text line per event. ZapTracer forwards events to
// a *zap.Logger as structured fields.
package trace
