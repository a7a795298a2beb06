package xlog

import (
	"context"
)

var (
	// C is a short alias of FromContext function
	C = FromContext
)

type contextKey struct{}

// FromContext gets the Logger from context, falls back to the default one.
func FromContext(ctx context.Context) *Logger {
	if ctx == nil {
		return Default()
	}
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return Default()
	}
	return logger
}

// WithContext injects a Logger carrying args into a child context.
func WithContext(ctx context.Context, args ...any) context.Context {
	logger := FromContext(ctx)
	return context.WithValue(ctx, contextKey{}, logger.With(args...))
}

// WithLogger injects l into a child context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}
