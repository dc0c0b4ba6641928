package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LIGHTBNB_DATABASE__URL", "postgres://u:p@localhost:5432/lightbnb")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "postgres://u:p@localhost:5432/lightbnb", cfg.Database.URL)
	require.EqualValues(t, 10, cfg.Database.MaxConns)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "json", cfg.Logging.Format)
	require.False(t, cfg.Logging.TraceQueries)
	require.False(t, cfg.CacheEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LIGHTBNB_DATABASE__URL", "postgres://db")
	t.Setenv("LIGHTBNB_DATABASE__MAX_CONNS", "4")
	t.Setenv("LIGHTBNB_REDIS__ADDR", "127.0.0.1:6379")
	t.Setenv("LIGHTBNB_REDIS__DB", "2")
	t.Setenv("LIGHTBNB_SEARCH__CACHE_TTL", "30s")
	t.Setenv("LIGHTBNB_LOGGING__LEVEL", "debug")
	t.Setenv("LIGHTBNB_LOGGING__FORMAT", "console")
	t.Setenv("LIGHTBNB_LOGGING__TRACE_QUERIES", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.EqualValues(t, 4, cfg.Database.MaxConns)
	require.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	require.Equal(t, 2, cfg.Redis.DB)
	require.Equal(t, 30*time.Second, cfg.Search.CacheTTL)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, "console", cfg.Logging.Format)
	require.True(t, cfg.Logging.TraceQueries)
	require.True(t, cfg.CacheEnabled())
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("LIGHTBNB_DATABASE__URL", "")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("LIGHTBNB_DATABASE__URL", "postgres://db")
	t.Setenv("LIGHTBNB_LOGGING__FORMAT", "xml")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("LIGHTBNB_LOGGING__FORMAT", "json")
	t.Setenv("LIGHTBNB_SEARCH__CACHE_TTL", "soon")
	_, err = Load()
	require.Error(t, err)
}
