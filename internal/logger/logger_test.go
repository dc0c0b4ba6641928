package logger

import (
	"bytes"
	"testing"

	"lightbnb/internal/config"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.LoggingConfig{Level: "warn", Format: "json"}, &buf)

	log.Info().Msg("hidden")
	require.Empty(t, buf.String())

	log.Warn().Str("op", "GetAllProperties").Msg("visible")
	require.Contains(t, buf.String(), `"level":"warn"`)
	require.Contains(t, buf.String(), `"op":"GetAllProperties"`)
	require.Contains(t, buf.String(), `"message":"visible"`)
}

func TestNewConsoleAndBadLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.LoggingConfig{Level: "nope", Format: "console"}, &buf)
	require.Equal(t, zerolog.InfoLevel, log.GetLevel())

	log.Info().Msg("hello")
	require.Contains(t, buf.String(), "hello")
	require.NotContains(t, buf.String(), `"message"`)
}

func TestTraceLogLevel(t *testing.T) {
	require.Equal(t, tracelog.LogLevelTrace, TraceLogLevel(zerolog.TraceLevel))
	require.Equal(t, tracelog.LogLevelDebug, TraceLogLevel(zerolog.DebugLevel))
	require.Equal(t, tracelog.LogLevelInfo, TraceLogLevel(zerolog.InfoLevel))
	require.Equal(t, tracelog.LogLevelWarn, TraceLogLevel(zerolog.WarnLevel))
	require.Equal(t, tracelog.LogLevelError, TraceLogLevel(zerolog.ErrorLevel))
	require.Equal(t, tracelog.LogLevelNone, TraceLogLevel(zerolog.Disabled))
}

func TestNewQueryTracer(t *testing.T) {
	tr := NewQueryTracer(New(config.LoggingConfig{Level: "debug", Format: "json"}, &bytes.Buffer{}))
	require.NotNil(t, tr.Logger)
	require.Equal(t, tracelog.LogLevelDebug, tr.LogLevel)
}
