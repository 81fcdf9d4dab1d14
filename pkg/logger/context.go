package logger

import (
	"context"
	"log/slog"
)

type dispatchIDKey struct{}

// WithDispatchID stores a dispatch identifier in ctx.
func WithDispatchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, dispatchIDKey{}, id)
}

// DispatchID returns the identifier stored by WithDispatchID.
func DispatchID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(dispatchIDKey{}).(string)
	return id, ok && id != ""
}

// DispatchIDExtractor adds "dispatch_id" to records logged with a context
// carrying one.
func DispatchIDExtractor() ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id, ok := DispatchID(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return slog.String("dispatch_id", id), true
	}
}
