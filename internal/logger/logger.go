// Package logger builds the process logger and the pgx query tracer that
// writes through it.
package logger

import (
	"io"
	"os"
	"time"

	"lightbnb/internal/config"

	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// New returns a zerolog logger writing to w (stderr when nil).
func New(cfg config.LoggingConfig, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// NewQueryTracer returns a pgx tracer that logs every statement, its
// arguments and duration through log.
func NewQueryTracer(log zerolog.Logger) *tracelog.TraceLog {
	return &tracelog.TraceLog{
		Logger:   pgxzero.NewLogger(log.With().Str("component", "pgx").Logger()),
		LogLevel: TraceLogLevel(log.GetLevel()),
	}
}

// TraceLogLevel maps a zerolog level onto the pgx tracelog scale.
func TraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return tracelog.LogLevelError
	default:
		return tracelog.LogLevelNone
	}
}
