package trace

import "context"

type tracerKey struct{}

type spanKey struct{}

// WithTracer stores the command's tracer; driver.Run and driver.EvalBatch
// pick it up with FromContext.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// FromContext returns Nop for a context without a tracer.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// SpanContext names the span an expression evaluation nests under. Batch
// workers set it to the per-line span so the pipeline stages of that line
// show up as its children.
type SpanContext struct {
	SpanID uint64
}

func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	return context.WithValue(ctx, spanKey{}, sc)
}

// CurrentSpan returns the zero SpanContext (a root parent) when none is set.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx != nil {
		if sc, ok := ctx.Value(spanKey{}).(SpanContext); ok {
			return sc
		}
	}
	return SpanContext{}
}
