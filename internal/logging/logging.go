// Package logging builds the process wide slog logger from the logging
// config section.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Sink names where log records go
type Sink string

const (
	SinkStderr Sink = "stderr"
	SinkFile   Sink = "file"
	SinkNone   Sink = "none"
)

// Format names the record encoding
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Environment overrides
const (
	EnvLogLevel = "DMT_LOG_LEVEL"
	EnvLogSink  = "DMT_LOG_SINK"
	EnvLogFile  = "DMT_LOG_FILE"
)

// Options is the logging config section
type Options struct {
	Level  string `json:"level"`
	Format Format `json:"format"`
	Sink   Sink   `json:"sink"`
	// File is the log path for the file sink; empty uses DefaultFile
	File string `json:"file,omitempty"`

	MaxSizeMB  int  `json:"max_size_mb"`
	MaxBackups int  `json:"max_backups"`
	MaxAgeDays int  `json:"max_age_days"`
	Compress   bool `json:"compress"`
}

// DefaultOptions logs warnings to stderr
func DefaultOptions() Options {
	return Options{
		Level:      "warn",
		Format:     FormatText,
		Sink:       SinkStderr,
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 14,
		Compress:   true,
	}
}

// WithEnv applies DMT_LOG_* overrides
func (o Options) WithEnv() Options {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		o.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSink)); v != "" {
		o.Sink = Sink(strings.ToLower(v))
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		o.File = v
	}
	return o
}

// ParseLevel maps a level name to a slog level, defaulting to info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// DefaultFile returns the log path used when none is configured
func DefaultFile(configDir string) string {
	return filepath.Join(configDir, "logs", "dmt.log")
}

// New builds a logger for opts. The returned close function flushes and
// releases the file sink.
func New(opts Options, configDir string) (*slog.Logger, func() error, error) {
	w, closeFn, err := writerFor(opts, configDir)
	if err != nil {
		return nil, nil, err
	}

	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	var handler slog.Handler
	switch opts.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, handlerOpts)
	default:
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler), closeFn, nil
}

// Init builds the logger and installs it as slog's default
func Init(opts Options, configDir string) (func() error, error) {
	logger, closeFn, err := New(opts.WithEnv(), configDir)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return closeFn, nil
}

func writerFor(opts Options, configDir string) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	switch opts.Sink {
	case SinkNone:
		return io.Discard, noop, nil
	case SinkStderr, "":
		return os.Stderr, noop, nil
	case SinkFile:
		path := opts.File
		if path == "" {
			path = DefaultFile(configDir)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		rot := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   opts.Compress,
		}
		return rot, rot.Close, nil
	}
	return nil, nil, fmt.Errorf("logging: unknown sink %q", opts.Sink)
}
