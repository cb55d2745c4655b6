package service

import (
	"context"
	"log/slog"
)

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

// logResult logs the outcome of an operation. Expected client errors go out
// at INFO, everything else at ERROR.
func logResult(ctx context.Context, logger *slog.Logger, serviceName, operation string, err error, attrs ...any) {
	pairs := append([]any{"service", serviceName, "operation", operation}, attrs...)
	l := logger.With(pairs...)
	switch ErrorKind(err) {
	case "":
		l.DebugContext(ctx, "operation succeeded")
	case "service_unavailable", "unexpected":
		l.ErrorContext(ctx, "operation failed", "error", err, "error_kind", ErrorKind(err))
	default:
		l.InfoContext(ctx, "operation rejected", "error", err, "error_kind", ErrorKind(err))
	}
}
