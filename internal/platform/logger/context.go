package logger

import (
	"context"
	"log/slog"

	"chatrelay/pkg/middleware"
)

// FromContext returns the request-scoped logger injected by the logging
// middleware, falling back to the process default.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(middleware.LoggerKey).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}
