package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all server configuration. Values come from an optional
// YAML file overridden by CONQUER_* environment variables.
type Config struct {
	LogLevel string  `yaml:"log-level" env:"CONQUER_LOG_LEVEL" env-default:"info"`
	HTTP     HTTP    `yaml:"http"`
	Storage  Storage `yaml:"storage"`
}

// HTTP holds the listener settings
type HTTP struct {
	Host string `yaml:"host" env:"CONQUER_HTTP_HOST" env-default:""`
	Port int    `yaml:"port" env:"CONQUER_HTTP_PORT" env-default:"8080"`
}

// Storage selects and configures the storage backend
type Storage struct {
	Backend string `yaml:"backend" env:"CONQUER_STORAGE_BACKEND" env-default:"memory"`
	Redis   Redis  `yaml:"redis"`
}

// Redis holds connection settings for the redis backend
type Redis struct {
	URL          string        `yaml:"url" env:"CONQUER_REDIS_URL" env-default:"redis://localhost:6379"`
	PoolSize     int           `yaml:"pool-size" env:"CONQUER_REDIS_POOL_SIZE" env-default:"10"`
	MinIdleConns int           `yaml:"min-idle-conns" env:"CONQUER_REDIS_MIN_IDLE_CONNS" env-default:"2"`
	GameTTL      time.Duration `yaml:"game-ttl" env:"CONQUER_REDIS_GAME_TTL" env-default:"24h"`
}

// Load reads configuration from the given file path (if non-empty) and
// the environment. Environment variables win over file values.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("unable to load config file %s: %w", path, err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("unable to read config from environment: %w", err)
	}
	return cfg, nil
}

// SlogLevel parses the configured log level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
