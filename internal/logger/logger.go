// Package logger wraps zerolog with the fields every component logs.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the structured logger.
type Options struct {
	ServiceName string
	Level       string
	Format      string
	Output      io.Writer
}

type Logger struct {
	base zerolog.Logger
}

type ctxKey struct{}

func New(opts Options) *Logger {
	var output io.Writer = opts.Output
	if output == nil {
		output = os.Stdout
	}
	if opts.Format == "console" {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: "15:04:05"}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	base := zerolog.New(output).
		With().
		Timestamp().
		Str("service", opts.ServiceName).
		Logger().
		Level(ParseLevel(opts.Level))

	return &Logger{base: base}
}

// Nop returns a logger that discards everything. Used by tests.
func Nop() *Logger {
	return &Logger{base: zerolog.Nop()}
}

func ParseLevel(value string) zerolog.Level {
	levelString := strings.ToLower(strings.TrimSpace(value))
	if levelString == "" {
		return zerolog.InfoLevel
	}
	if lvl, err := zerolog.ParseLevel(levelString); err == nil {
		return lvl
	}
	return zerolog.InfoLevel
}

// WithSession returns a context whose logger carries the session id.
func (l *Logger) WithSession(ctx context.Context, sessionID string) context.Context {
	entry := l.from(ctx).With().Str("session_id", sessionID).Logger()
	return context.WithValue(ctx, ctxKey{}, &entry)
}

func (l *Logger) from(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if entry, ok := ctx.Value(ctxKey{}).(*zerolog.Logger); ok {
			return entry
		}
	}
	return &l.base
}

func (l *Logger) Debug(ctx context.Context) *zerolog.Event { return l.from(ctx).Debug() }
func (l *Logger) Info(ctx context.Context) *zerolog.Event  { return l.from(ctx).Info() }
func (l *Logger) Warn(ctx context.Context) *zerolog.Event  { return l.from(ctx).Warn() }
func (l *Logger) Error(ctx context.Context) *zerolog.Event { return l.from(ctx).Error() }
