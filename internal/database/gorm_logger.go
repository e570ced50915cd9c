package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// maxLoggedSQL truncates statements in logs; checkout inserts can be long.
const maxLoggedSQL = 2000

// CustomGormLogger routes gorm output through slog so queries carry the
// request_id and restaurant_id of the calling request.
type CustomGormLogger struct {
	logger *slog.Logger
	Config logger.Config
}

// NewGormLogger logs errors and queries slower than 200ms.
func NewGormLogger(l *slog.Logger) *CustomGormLogger {
	return &CustomGormLogger{
		logger: l,
		Config: logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	}
}

func (l *CustomGormLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *l
	clone.Config.LogLevel = level
	return &clone
}

func (l *CustomGormLogger) Info(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, logger.Info, slog.LevelInfo, msg, data...)
}

func (l *CustomGormLogger) Warn(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, logger.Warn, slog.LevelWarn, msg, data...)
}

func (l *CustomGormLogger) Error(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, logger.Error, slog.LevelError, msg, data...)
}

func (l *CustomGormLogger) printf(ctx context.Context, min logger.LogLevel, level slog.Level, msg string, data ...any) {
	if l.Config.LogLevel >= min {
		l.logger.Log(ctx, level, fmt.Sprintf(msg, data...))
	}
}

// Trace reports one executed statement: failures at ERROR, slow queries at
// WARN and everything else only in Info mode.
func (l *CustomGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Config.LogLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	failed := err != nil && !(l.Config.IgnoreRecordNotFoundError && errors.Is(err, gorm.ErrRecordNotFound))
	slow := l.Config.SlowThreshold > 0 && elapsed > l.Config.SlowThreshold

	var (
		level slog.Level
		msg   string
	)
	switch {
	case failed && l.Config.LogLevel >= logger.Error:
		level, msg = slog.LevelError, "query failed"
	case slow && l.Config.LogLevel >= logger.Warn:
		level, msg = slog.LevelWarn, "slow query"
	case l.Config.LogLevel >= logger.Info:
		level, msg = slog.LevelInfo, "query"
	default:
		return
	}

	sql, rows := fc()
	if len(sql) > maxLoggedSQL {
		sql = sql[:maxLoggedSQL] + "..."
	}
	attrs := []slog.Attr{
		slog.String("sql", sql),
		slog.Int64("rows", rows),
		slog.Duration("elapsed", elapsed),
	}
	if failed {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.logger.LogAttrs(ctx, level, msg, attrs...)
}
