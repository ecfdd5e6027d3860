// Package logging builds the application's slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// RotationConfig controls log file rotation.
type RotationConfig struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultRotation keeps a few small compressed backups.
func DefaultRotation() RotationConfig {
	return RotationConfig{
		MaxSizeMB:  5,
		MaxBackups: 3,
		MaxAgeDays: 14,
		Compress:   true,
	}
}

// Result contains the logger and the writer backing it.
type Result struct {
	Logger   *slog.Logger
	LogFile  io.WriteCloser
	FilePath string
}

// Close closes the log file if one was opened.
func (r *Result) Close() error {
	if r.LogFile != nil {
		return r.LogFile.Close()
	}
	return nil
}

// Level maps the verbose flag to a slog level.
func Level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Setup returns a text logger on stderr, or a JSON logger writing to a
// rotating file when logPath is set.
func Setup(logPath string, level slog.Leveler, rotation RotationConfig) *Result {
	if logPath == "" {
		return &Result{Logger: SetupWithWriter(os.Stderr, level, false)}
	}

	writer := &lumberjack.Logger{
		Filename:   filepath.Clean(logPath),
		MaxSize:    rotation.MaxSizeMB,
		MaxBackups: rotation.MaxBackups,
		MaxAge:     rotation.MaxAgeDays,
		Compress:   rotation.Compress,
	}

	return &Result{
		Logger:   SetupWithWriter(writer, level, true),
		LogFile:  writer,
		FilePath: writer.Filename,
	}
}

// SetupWithWriter creates a logger on w. Useful for capturing output in tests.
func SetupWithWriter(w io.Writer, level slog.Leveler, json bool) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}
	if json {
		return slog.New(slog.NewJSONHandler(w, options))
	}
	return slog.New(slog.NewTextHandler(w, options))
}
