package config

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds process-level settings for the CLI and shell.
type Config struct {
	// DataDir overrides the platform data directory when non-empty.
	DataDir  string
	LogLevel slog.Level
	LogCalls bool
	Headless bool
}

// Default returns a Config with sensible defaults: platform data dir,
// warnings only, no use-case logging, window operations enabled.
func Default() Config {
	return Config{
		LogLevel: slog.LevelWarn,
	}
}

// Load reads configuration from environment variables, falling back to
// defaults for any unset or invalid values.
func Load() Config {
	cfg := Default()

	if v := os.Getenv("NOTESTUDIO_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("NOTESTUDIO_LOG_LEVEL"); v != "" {
		if lvl, ok := parseLevel(v); ok {
			cfg.LogLevel = lvl
		}
	}
	if v := os.Getenv("NOTESTUDIO_LOG_CALLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogCalls = b
		}
	}
	if v := os.Getenv("NOTESTUDIO_HEADLESS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Headless = b
		}
	}

	return cfg
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return 0, false
	}
}

// NewLogger builds the process logger: a text handler on w at the
// configured level.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	if w == nil {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}
