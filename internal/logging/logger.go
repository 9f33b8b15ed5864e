// Package logging provides a unified logging interface for the bspnum library.
// It abstracts the underlying logging implementation, allowing consistent
// structured logging across the runtime and the numerical engines while
// supporting zerolog as the backend.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the unified logging interface used across the library.
// It provides a consistent API for logging at different levels.
type Logger interface {
	// Info logs an informational message.
	Info(msg string, fields ...Field)

	// Error logs an error message with the associated error.
	Error(msg string, err error, fields ...Field)

	// Debug logs a debug message.
	Debug(msg string, fields ...Field)

	// With returns a Logger that attaches the given fields to every message.
	With(fields ...Field) Logger
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value any
}

// String creates a string field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an integer field.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Float64 creates a float64 field.
func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a boolean field.
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Err creates an error field.
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}

// ZerologAdapter adapts a zerolog.Logger to the Logger interface.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter creates a new Logger backed by zerolog.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// NewDefaultLogger creates a Logger with sensible defaults for the library:
// JSON output on stderr with timestamps.
func NewDefaultLogger() *ZerologAdapter {
	return NewZerologAdapter(
		zerolog.New(os.Stderr).With().Timestamp().Logger(),
	)
}

// NewLogger creates a Logger writing to the specified output with a
// component field attached to every message.
func NewLogger(w io.Writer, component string) *ZerologAdapter {
	return NewZerologAdapter(
		zerolog.New(w).With().Str("component", component).Timestamp().Logger(),
	)
}

// Nop returns a Logger that discards every message. Useful in tests and for
// callers that opt out of runtime logging.
func Nop() *ZerologAdapter {
	return NewZerologAdapter(zerolog.Nop())
}

func (z *ZerologAdapter) applyFields(event *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			event = event.Str(f.Key, v)
		case int:
			event = event.Int(f.Key, v)
		case int64:
			event = event.Int64(f.Key, v)
		case uint64:
			event = event.Uint64(f.Key, v)
		case float64:
			event = event.Float64(f.Key, v)
		case error:
			event = event.Err(v)
		case bool:
			event = event.Bool(f.Key, v)
		default:
			event = event.Interface(f.Key, v)
		}
	}
	return event
}

func (z *ZerologAdapter) applyContext(ctx zerolog.Context, fields []Field) zerolog.Context {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			ctx = ctx.Str(f.Key, v)
		case int:
			ctx = ctx.Int(f.Key, v)
		case int64:
			ctx = ctx.Int64(f.Key, v)
		case uint64:
			ctx = ctx.Uint64(f.Key, v)
		case float64:
			ctx = ctx.Float64(f.Key, v)
		case error:
			ctx = ctx.AnErr(f.Key, v)
		case bool:
			ctx = ctx.Bool(f.Key, v)
		default:
			ctx = ctx.Interface(f.Key, v)
		}
	}
	return ctx
}

// Info logs an informational message.
func (z *ZerologAdapter) Info(msg string, fields ...Field) {
	event := z.logger.Info()
	z.applyFields(event, fields).Msg(msg)
}

// Error logs an error message.
func (z *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	event := z.logger.Error().Err(err)
	z.applyFields(event, fields).Msg(msg)
}

// Debug logs a debug message.
func (z *ZerologAdapter) Debug(msg string, fields ...Field) {
	event := z.logger.Debug()
	z.applyFields(event, fields).Msg(msg)
}

// With returns a Logger carrying the given fields on every message.
func (z *ZerologAdapter) With(fields ...Field) Logger {
	return NewZerologAdapter(z.applyContext(z.logger.With(), fields).Logger())
}
