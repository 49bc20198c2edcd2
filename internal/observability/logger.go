package observability

import (
	"context"
	"fmt"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides structured logging with context awareness.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Field)
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
}

// Field represents a structured log field.
type Field = zap.Field

// NewLogger builds a zap logger. format "console" selects the development
// encoder; anything else logs JSON.
func NewLogger(level, format string) (*zap.Logger, error) {
	if level == "" {
		level = "info"
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

type contextLogger struct {
	base *zap.Logger
}

// NewContextLogger wraps base so that every entry carries the request ID.
func NewContextLogger(base *zap.Logger) Logger {
	return &contextLogger{base: base}
}

func (l *contextLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.base.Debug(msg, withRequestID(ctx, fields)...)
}

func (l *contextLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.base.Info(msg, withRequestID(ctx, fields)...)
}

func (l *contextLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.base.Warn(msg, withRequestID(ctx, fields)...)
}

func (l *contextLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.base.Error(msg, withRequestID(ctx, fields)...)
}

func withRequestID(ctx context.Context, fields []Field) []Field {
	if id := middleware.GetReqID(ctx); id != "" {
		return append(fields, zap.String("request_id", id))
	}
	return fields
}
