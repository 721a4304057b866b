// Package logging builds the zerolog logger used by the collaborator
// layers (HTTP server, CLI, storage load). The core index and engine
// packages do not log.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Environment overrides, applied on top of the config file.
const (
	EnvLogLevel = "SARF_LOG_LEVEL"
	EnvLogFile  = "SARF_LOG_FILE"
)

// Config controls log output.
type Config struct {
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string `json:"level"`
	// File, when set, enables JSON logging to a rotated file.
	File string `json:"file"`
	// MaxSizeMB and MaxAgeDays bound the rotated file. Zero values use
	// lumberjack defaults.
	MaxSizeMB  int `json:"max_size_mb"`
	MaxAgeDays int `json:"max_age_days"`
	// Console disables the human-readable stderr writer when false is
	// wanted; default on.
	NoConsole bool `json:"no_console"`
}

// New builds a logger from cfg, honoring the environment overrides.
func New(cfg Config) zerolog.Logger {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.File = v
	}

	var writers []io.Writer
	if !cfg.NoConsole {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if cfg.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename: cfg.File,
			MaxSize:  cfg.MaxSizeMB,
			MaxAge:   cfg.MaxAgeDays,
			Compress: true,
		})
	}

	var out io.Writer
	switch len(writers) {
	case 0:
		out = io.Discard
	case 1:
		out = writers[0]
	default:
		out = zerolog.MultiLevelWriter(writers...)
	}

	return zerolog.New(out).Level(ParseLevel(cfg.Level)).With().Timestamp().Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "trace":
		return zerolog.TraceLevel
	default:
		return zerolog.InfoLevel
	}
}
