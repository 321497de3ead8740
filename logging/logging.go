// Package logging provides structured logging for the pharmacy API using slog.
// It exposes a package-global logging service with convenience helpers so every
// package can log without carrying a logger around, plus an HTTP middleware
// for request logging.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type LoggingService struct {
	Logger *slog.Logger
}

var DefaultLoggingService *LoggingService

// InitLogger initializes the global logger instance. An empty logDir logs
// to stderr only.
func InitLogger(logDir string) {
	DefaultLoggingService = &LoggingService{
		Logger: SetupLogger(logDir, os.Getenv("LOG_LEVEL")),
	}
	slog.SetDefault(DefaultLoggingService.Logger)
}

// SetupLogger builds a text handler writing to stderr and, when logDir is
// set, to an append-only log file as well.
func SetupLogger(logDir, level string) *slog.Logger {
	var out io.Writer = os.Stderr

	if logDir != "" {
		if err := os.MkdirAll(logDir, 0755); err == nil {
			logPath := filepath.Join(logDir, "pharmacy-api.log")
			file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err == nil {
				out = io.MultiWriter(os.Stderr, file)
			} else {
				slog.Warn("Failed to open log file, falling back to stderr", "path", logPath, "error", err)
			}
		}
	}

	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: parseLevel(level),
	}))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Package-level functions for direct access

func Info(msg string, args ...any) {
	logWith(slog.LevelInfo, msg, args...)
}

func Warn(msg string, args ...any) {
	logWith(slog.LevelWarn, msg, args...)
}

func Error(msg string, args ...any) {
	logWith(slog.LevelError, msg, args...)
}

func Debug(msg string, args ...any) {
	logWith(slog.LevelDebug, msg, args...)
}

func logWith(level slog.Level, msg string, args ...any) {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		// Fallback to console logger if not initialized
		fallback := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
		fallback.Log(context.Background(), level, msg, args...)
		return
	}
	DefaultLoggingService.Logger.Log(context.Background(), level, msg, args...)
}
