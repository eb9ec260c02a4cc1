// Package logging builds the structured loggers shared by the game binaries.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tomz197/spaceship/internal/config"
)

// New creates a logger writing to w with the level and format from cfg.
func New(w io.Writer, cfg config.LoggingConfig, prefix string) (*log.Logger, error) {
	level := log.InfoLevel
	if cfg.Level != "" {
		parsed, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	var formatter log.Formatter
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		formatter = log.TextFormatter
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
		Formatter:       formatter,
	}), nil
}

// OpenFile creates a logger for the local game, which owns the terminal and
// cannot log to stderr. An empty cfg.File discards everything.
// The returned close function must be called on exit.
func OpenFile(cfg config.LoggingConfig, prefix string) (*log.Logger, func() error, error) {
	if cfg.File == "" {
		logger, err := New(io.Discard, cfg, prefix)
		return logger, func() error { return nil }, err
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger, err := New(f, cfg, prefix)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f.Close, nil
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
