package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gcclub/membercard/internal/config"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger adapts slog for GORM
type GormLogger struct {
	logger               *slog.Logger
	SlowThreshold        time.Duration
	IgnoreRecordNotFound bool
	HideSqlInLog         bool
	LogLevel             gormlogger.LogLevel
}

// newLogger creates a new GORM logger with slog
func newLogger(cfg *config.Config) gormlogger.Interface {
	var logLevel gormlogger.LogLevel

	// local/dev log every statement at debug, prod only errors
	if cfg.IsProduction() {
		logLevel = gormlogger.Error
	} else {
		logLevel = gormlogger.Info
	}

	return &GormLogger{
		logger:               slog.With("component", "gorm"),
		SlowThreshold:        200 * time.Millisecond,
		IgnoreRecordNotFound: true,               // unknown card tokens are routine, not errors
		HideSqlInLog:         cfg.IsProduction(), // statements carry names and phone numbers
		LogLevel:             logLevel,
	}
}

// LogMode sets the log level
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

// Info logs info level messages
func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Info {
		l.logger.InfoContext(ctx, fmt.Sprintf(msg, data...))
	}
}

// Warn logs warning level messages
func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Warn {
		l.logger.WarnContext(ctx, fmt.Sprintf(msg, data...))
	}
}

// Error logs error level messages
func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Error {
		l.logger.ErrorContext(ctx, fmt.Sprintf(msg, data...))
	}
}

// Trace logs SQL queries with timing information
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.LogLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && l.LogLevel >= gormlogger.Error && (!errors.Is(err, gorm.ErrRecordNotFound) || !l.IgnoreRecordNotFound):
		l.logger.ErrorContext(ctx, "database query failed",
			"error", err,
			"elapsed", elapsed.String(),
			"rows", rows,
			"sql", sql,
		)

	case elapsed > l.SlowThreshold && l.SlowThreshold != 0 && l.LogLevel >= gormlogger.Warn:
		l.logger.WarnContext(ctx, "slow query",
			"elapsed", elapsed.String(),
			"threshold", l.SlowThreshold.String(),
			"rows", rows,
			"sql", sql,
		)

	case l.LogLevel >= gormlogger.Info:
		if l.HideSqlInLog {
			l.logger.DebugContext(ctx, "query executed",
				"elapsed", elapsed.String(),
				"rows", rows,
			)
		} else {
			l.logger.DebugContext(ctx, "query executed",
				"elapsed", elapsed.String(),
				"rows", rows,
				"sql", sql,
			)
		}
	}
}
