// Package config loads runtime configuration from LIGHTBNB_* environment
// variables (optionally via a .env file) and validates it.
//
// Nested keys use a double underscore: LIGHTBNB_DATABASE__URL maps to
// database.url and LIGHTBNB_SEARCH__CACHE_TTL to search.cache_ttl.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "LIGHTBNB_"

type Config struct {
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Redis    RedisConfig    `koanf:"redis"`
	Search   SearchConfig   `koanf:"search"`
	Logging  LoggingConfig  `koanf:"logging" validate:"required"`
}

type DatabaseConfig struct {
	URL      string `koanf:"url" validate:"required"`
	MaxConns int32  `koanf:"max_conns" validate:"gte=0"`
}

// RedisConfig is optional; an empty Addr disables the search cache.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"gte=0"`
}

type SearchConfig struct {
	CacheTTL time.Duration `koanf:"cache_ttl" validate:"gte=0"`
}

type LoggingConfig struct {
	Level        string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format       string `koanf:"format" validate:"oneof=json console"`
	TraceQueries bool   `koanf:"trace_queries"`
}

// CacheEnabled reports whether search results should go through Redis.
func (c *Config) CacheEnabled() bool {
	return c.Redis.Addr != "" && c.Search.CacheTTL > 0
}

// Load reads the environment, applies defaults and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	applyDefaults(cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 10
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}
