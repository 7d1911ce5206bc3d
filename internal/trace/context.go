package trace

import "context"

type carrier struct {
	tracer Tracer
	parent uint64
}

type ctxKey struct{}

func carried(ctx context.Context) carrier {
	if ctx != nil {
		if c, ok := ctx.Value(ctxKey{}).(carrier); ok {
			return c
		}
	}
	return carrier{tracer: Nop}
}

// WithTracer attaches t to ctx. A nil t attaches Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, carrier{tracer: t})
}

// WithSpan records s as the parent for spans begun from ctx.
func WithSpan(ctx context.Context, s *Span) context.Context {
	c := carried(ctx)
	c.parent = s.ID()
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the attached tracer or Nop.
func FromContext(ctx context.Context) Tracer {
	return carried(ctx).tracer
}

// ParentFromContext returns the id recorded by WithSpan, or 0.
func ParentFromContext(ctx context.Context) uint64 {
	return carried(ctx).parent
}
