// Package config reads process settings for the fastexcel command.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvLogLevel  = "FASTEXCEL_LOG_LEVEL"
	EnvLogFormat = "FASTEXCEL_LOG_FORMAT"
	EnvCharset   = "FASTEXCEL_CSV_CHARSET"
)

// Config holds process-wide settings.
type Config struct {
	LogLevel  slog.Level
	LogFormat string // "text" or "json"
	// CSVCharset is the default encoding of csv input.
	CSVCharset string
}

// Load reads a .env file in the working directory, if any, then the
// environment. Variables already set in the environment win over .env.
func Load() (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:   slog.LevelWarn,
		LogFormat:  "text",
		CSVCharset: strings.TrimSpace(os.Getenv(EnvCharset)),
	}

	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}

	if v := strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogFormat))); v != "" {
		switch v {
		case "text", "json":
			cfg.LogFormat = v
		default:
			return nil, fmt.Errorf("%s: invalid format %q (must be text or json)", EnvLogFormat, v)
		}
	}

	return cfg, nil
}

// Logger builds a logger writing to w at the configured level and format.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
