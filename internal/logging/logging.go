// Package logging configures the process-wide slog logger.
//
// Logs go to a JSON file under the XDG cache directory so they never mix
// with CLI output or the terminal UI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const appName = "taskflow"

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLevel maps a level name to slog.Level, defaulting to warn
func ParseLevel(name string) slog.Level {
	level, ok := levels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return slog.LevelWarn
	}
	return level
}

// Setup opens the log file, installs the default logger and returns it
// with a function that closes the file
func Setup(levelName string) (*slog.Logger, func() error, error) {
	dir := CacheDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, appName+".log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := New(file, levelName)
	slog.SetDefault(logger)
	logger.Debug("logging initialized", "level", ParseLevel(levelName).String(), "log_file", path)
	return logger, file.Close, nil
}

// New builds a JSON logger writing to w
func New(w io.Writer, levelName string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     ParseLevel(levelName),
		AddSource: true,
	}))
}

// CacheDir returns the XDG cache directory for taskflow
func CacheDir() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, appName)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}

	if runtime.GOOS == "darwin" {
		return filepath.Join(homeDir, "Library", "Caches", appName)
	}
	return filepath.Join(homeDir, ".cache", appName)
}
