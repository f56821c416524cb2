// Package logging configures slog for skritter.
//
// Logs go to stderr unless the terminal UI owns the screen, in which case
// they default to $XDG_STATE_HOME/skritter/skritter.log.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Level represents a logging level.
type Level = slog.Level

// Format represents the output format for logs.
type Format int

const (
	// FormatText outputs human-readable text logs.
	FormatText Format = iota
	// FormatJSON outputs JSON-structured logs.
	FormatJSON
)

// Output destinations.
const (
	OutputStderr = "stderr"
	OutputFile   = "file"
)

// Config holds the logging configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level Level

	// Format is the output format (text or JSON).
	Format Format

	// Output is "stderr" or "file".
	Output string

	// FilePath is the log file when Output is "file".
	FilePath string

	// RunID tags every record; a fresh one is generated when empty.
	RunID string
}

// DefaultConfig returns a default logging configuration.
func DefaultConfig() *Config {
	return &Config{
		Level:    slog.LevelInfo,
		Format:   FormatText,
		Output:   OutputStderr,
		FilePath: DefaultPath(),
	}
}

// DefaultPath returns $XDG_STATE_HOME/skritter/skritter.log.
func DefaultPath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		homeDir, _ := os.UserHomeDir()
		stateHome = filepath.Join(homeDir, ".local", "state")
	}
	return filepath.Join(stateHome, "skritter", "skritter.log")
}

// Logger is a slog.Logger that owns its output file.
type Logger struct {
	*slog.Logger
	RunID  string
	Path   string
	closer io.Closer
}

// New creates a Logger. stderr is used when Output is "stderr".
func New(cfg *Config, stderr io.Writer) (*Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	l := &Logger{RunID: cfg.RunID}
	if l.RunID == "" {
		l.RunID = uuid.NewString()
	}

	var w io.Writer
	switch cfg.Output {
	case OutputStderr, "":
		w = stderr
	case OutputFile:
		path := cfg.FilePath
		if path == "" {
			path = DefaultPath()
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w, l.Path, l.closer = f, path, f
	default:
		return nil, fmt.Errorf("unknown log output %q", cfg.Output)
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}
	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	l.Logger = slog.New(handler).With("run_id", l.RunID)
	return l, nil
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// ParseLevel parses a level name.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %q", s)
	}
}

// ParseFormat parses "text" or "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown log format: %q", s)
	}
}
