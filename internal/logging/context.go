package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type contextKey struct{}

// WithLogger attaches logger to ctx.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger attached to ctx, or Default.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(contextKey{}).(*log.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}

// WithPath returns a context whose logger tags every entry with path.
func WithPath(ctx context.Context, path string) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(FieldPath, path))
}
