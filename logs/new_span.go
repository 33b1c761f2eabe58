package logs

import (
	"context"
	"crypto/rand"
)

// NewSpan opens a span named what. A span already in ctx becomes the parent.
type NewSpan func(ctx context.Context, what string) (context.Context, Span)

func (Module) NewSpan(
	logger Logger,
) NewSpan {
	return func(ctx context.Context, what string) (context.Context, Span) {

		var parent Span
		if v := ctx.Value(SpanKey); v != nil {
			parent = v.(Span)
		}

		span := Span(rand.Text())
		ctx = context.WithValue(ctx, SpanKey, span)

		args := []any{"what", what}
		if parent != "" {
			args = append(args, "parent", parent)
		}
		logger.DebugContext(ctx, "new span", args...)

		return ctx, span
	}
}
