// Package logger provides the process-wide structured logger. It wraps
// logrus with context-aware leveled methods that carry the request trace id.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Config configures the process logger.
type Config struct {
	Level       string // debug, info, warn, error
	Format      string // json or text
	Output      io.Writer
	SentryDSN   string
	Environment string
}

// Logger wraps a logrus logger with context-aware methods.
type Logger struct {
	l *logrus.Logger
}

var std = &Logger{l: logrus.StandardLogger()}

// New configures the standard logger from cfg and returns a cleanup
// function that flushes any attached hooks.
func New(cfg *Config) (func(), error) {
	if cfg == nil {
		cfg = &Config{}
	}

	l := logrus.StandardLogger()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if cfg.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if cfg.Output != nil {
		l.SetOutput(cfg.Output)
	} else {
		l.SetOutput(os.Stdout)
	}

	cleanup := func() {}
	if cfg.SentryDSN != "" {
		hook, flush, err := newSentryHook(cfg.SentryDSN, cfg.Environment)
		if err != nil {
			return nil, err
		}
		l.AddHook(hook)
		cleanup = flush
	}

	return cleanup, nil
}

// StdLogger returns the standard logger instance.
func StdLogger() *Logger {
	return std
}

// Debug logs at debug level with key-value pairs.
func (lg *Logger) Debug(ctx context.Context, msg string, kv ...any) {
	lg.entry(ctx, kv...).Debug(msg)
}

// Info logs at info level with key-value pairs.
func (lg *Logger) Info(ctx context.Context, msg string, kv ...any) {
	lg.entry(ctx, kv...).Info(msg)
}

// Warn logs at warn level with key-value pairs.
func (lg *Logger) Warn(ctx context.Context, msg string, kv ...any) {
	lg.entry(ctx, kv...).Warn(msg)
}

// Error logs at error level with key-value pairs.
func (lg *Logger) Error(ctx context.Context, msg string, kv ...any) {
	lg.entry(ctx, kv...).Error(msg)
}

func (lg *Logger) entry(ctx context.Context, kv ...any) *logrus.Entry {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		fields[key] = kv[i+1]
	}
	if traceID := GetTraceID(ctx); traceID != "" {
		fields["trace_id"] = traceID
	}
	return lg.l.WithFields(fields)
}
