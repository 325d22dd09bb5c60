// Package logging writes structured JSON logs to a file. The TUI owns the
// terminal, so nothing is written to stdout.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu       sync.Mutex
	logFile  *os.File
	logger   *slog.Logger
	levelVar = &slog.LevelVar{}
)

// Setup opens (or creates) the log file at path, creating parent directories.
// When the file cannot be opened the returned logger discards records and the
// error says why; callers report it before the TUI takes the terminal.
func Setup(path string, rawLevel string) (*slog.Logger, error) {
	mu.Lock()
	defer mu.Unlock()

	SetRawLogLevel(rawLevel)

	var w io.Writer = io.Discard
	var setupErr error
	if path != "" {
		f, err := openLogFile(path)
		if err != nil {
			setupErr = err
		} else {
			if logFile != nil {
				logFile.Close()
			}
			logFile = f
			w = f
		}
	}

	logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     levelVar,
		AddSource: false,
	}))
	return logger, setupErr
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// Logger returns the configured logger, or a discarding one before Setup.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		return Discard()
	}
	return logger
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}

func SetRawLogLevel(rawLevel string) {
	var level slog.Level

	switch strings.ToLower(rawLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	levelVar.Set(level)
}

func Level() slog.Level {
	return levelVar.Level()
}

func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
