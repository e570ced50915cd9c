// Package observability provides repository logging, metrics, and tracing.
package observability

import (
	"context"
	"log/slog"
	"os"
)

// Logger backs RepoLogger. The server replaces it with the request-aware logger at startup.
var Logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

// RepoLoggingEnabled toggles repository write logging.
var RepoLoggingEnabled = true

// SetLogger swaps the logger used by repository loggers created afterwards.
func SetLogger(l *slog.Logger) {
	if l != nil {
		Logger = l
	}
}

// RepoLogger provides structured logging for repository writes.
type RepoLogger struct {
	tableName string
}

// NewRepoLogger creates a new RepoLogger for the given table.
func NewRepoLogger(tableName string) *RepoLogger {
	return &RepoLogger{tableName: tableName}
}

// LogCreate logs a repository create operation.
func (l *RepoLogger) LogCreate(ctx context.Context, attrs ...slog.Attr) {
	l.log(ctx, "create", attrs)
}

// LogUpdate logs a repository update operation.
func (l *RepoLogger) LogUpdate(ctx context.Context, attrs ...slog.Attr) {
	l.log(ctx, "update", attrs)
}

// LogDelete logs a repository delete operation.
func (l *RepoLogger) LogDelete(ctx context.Context, attrs ...slog.Attr) {
	l.log(ctx, "delete", attrs)
}

// LogError logs a repository error.
func (l *RepoLogger) LogError(ctx context.Context, err error, operation string) {
	if !RepoLoggingEnabled || err == nil {
		return
	}
	Logger.ErrorContext(ctx, "repository error",
		slog.String("table", l.tableName),
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

func (l *RepoLogger) log(ctx context.Context, operation string, attrs []slog.Attr) {
	if !RepoLoggingEnabled {
		return
	}
	base := []slog.Attr{
		slog.String("table", l.tableName),
		slog.String("operation", operation),
	}
	Logger.LogAttrs(ctx, slog.LevelInfo, "repository "+operation, append(base, attrs...)...)
}
