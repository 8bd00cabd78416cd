// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/config"
)

// ParseLevel maps a level name or a numeric slog level to slog.Level.
func ParseLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// numeric levels, e.g. -4 for debug
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// NewRotatingWriter returns the rotating log file described by cfg.
func NewRotatingWriter(cfg config.LogConfig, pathOverride string) *lumberjack.Logger {
	logPath := strings.TrimSpace(pathOverride)
	if logPath == "" {
		logPath = strings.TrimSpace(cfg.Filename)
	}
	if logPath == "" {
		logPath = domain.DefaultLogFilename
	}

	return &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
}

// NewLogger builds a text logger writing to w. verbose forces debug level.
func NewLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	logLevel := ParseLevel(level, slog.LevelInfo)
	if verbose {
		logLevel = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})
	return slog.New(handler)
}

// Configure installs the rotating file logger as the slog default and
// returns the writer so the caller can close it on exit.
func Configure(cfg config.LogConfig, pathOverride string, verbose bool) io.Closer {
	w := NewRotatingWriter(cfg, pathOverride)
	slog.SetDefault(NewLogger(w, cfg.Level, verbose))
	return w
}
