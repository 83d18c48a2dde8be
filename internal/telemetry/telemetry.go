// Package telemetry wires zap-backed structured logging into the core
// packages without coupling them to zap directly: grammar and driver
// accept a plain callback of the same shape as Sink (grammar.WithTrace,
// driver.WithTrace), and this package is the only place that knows
// about zap.Logger.
//
// Grounded on nihei9-vartan/cmd/vartan/root.go's logger setup, which
// likewise keeps the CLI's logging concerns out of the library
// packages.
package telemetry

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Sink receives one structured log line. Core packages declare their
// own TraceFunc of this shape and never import zap.
type Sink func(level string, msg string, fields map[string]any)

// Logger wraps a *zap.Logger and exposes it as a Sink, plus the usual
// leveled methods for the CLI's own logging.
type Logger struct {
	z *zap.Logger
}

// New builds a Logger. verbose selects debug level; otherwise info.
func New(verbose bool) (*Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{z: z}, nil
}

// Sink returns a Sink backed by this Logger, for passing into core
// package options.
func (l *Logger) Sink() Sink {
	return func(level, msg string, fields map[string]any) {
		zfields := make([]zap.Field, 0, len(fields))
		for k, v := range fields {
			zfields = append(zfields, zap.Any(k, v))
		}
		switch level {
		case "debug":
			l.z.Debug(msg, zfields...)
		case "warn":
			l.z.Warn(msg, zfields...)
		case "error":
			l.z.Error(msg, zfields...)
		default:
			l.z.Info(msg, zfields...)
		}
	}
}

// Sync flushes any buffered log entries; call before process exit.
func (l *Logger) Sync() error { return l.z.Sync() }

func (l *Logger) Debug(msg string, kv ...any) { l.z.Sugar().Debugw(msg, kv...) }
func (l *Logger) Info(msg string, kv ...any)  { l.z.Sugar().Infow(msg, kv...) }
func (l *Logger) Warn(msg string, kv ...any)  { l.z.Sugar().Warnw(msg, kv...) }
func (l *Logger) Error(msg string, kv ...any) { l.z.Sugar().Errorw(msg, kv...) }
