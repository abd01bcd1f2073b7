// Package config loads process configuration from CONNECT4_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"connect4/games"

	"github.com/caarlos0/env/v11"
)

const (
	ModeHTTP     = "http"
	ModeTerminal = "terminal"
)

type Config struct {
	Mode            string        `env:"MODE" envDefault:"http"`
	Addr            string        `env:"ADDR" envDefault:":9000"`
	BoardWidth      int           `env:"BOARD_WIDTH" envDefault:"7"`
	BoardHeight     int           `env:"BOARD_HEIGHT" envDefault:"6"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"text"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	WSReadTimeout   time.Duration `env:"WS_READ_TIMEOUT" envDefault:"2m"`
	WSPingInterval  time.Duration `env:"WS_PING_INTERVAL" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	return load(env.Options{Prefix: "CONNECT4_"})
}

func load(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Mode = strings.ToLower(cfg.Mode)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	switch c.Mode {
	case ModeHTTP, ModeTerminal:
	default:
		errs = append(errs, fmt.Errorf("mode %q: want %q or %q", c.Mode, ModeHTTP, ModeTerminal))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log level %q", c.LogLevel))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log format %q", c.LogFormat))
	}
	if c.BoardWidth < 1 || c.BoardHeight < 1 || c.BoardWidth > games.MaxDimension || c.BoardHeight > games.MaxDimension {
		errs = append(errs, fmt.Errorf("board %dx%d: dimensions must be in 1..%d", c.BoardWidth, c.BoardHeight, games.MaxDimension))
	}
	if c.WSReadTimeout <= 0 || c.WSPingInterval <= 0 || c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("timeouts and intervals must be positive"))
	}
	if c.Mode == ModeHTTP && c.Addr == "" {
		errs = append(errs, errors.New("addr is required in http mode"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
