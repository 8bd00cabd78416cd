package logging

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ludo-technologies/codesim/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in, slog.LevelInfo), "level %q", tt.in)
	}
}

func TestNewRotatingWriter(t *testing.T) {
	cfg := config.DefaultConfig().Log

	w := NewRotatingWriter(cfg, "")
	assert.Equal(t, ".codesim.log", w.Filename)
	assert.Equal(t, cfg.MaxBackups, w.MaxBackups)

	override := filepath.Join(t.TempDir(), "run.log")
	assert.Equal(t, override, NewRotatingWriter(cfg, override).Filename)

	cfg.Filename = "  "
	assert.Equal(t, ".codesim.log", NewRotatingWriter(cfg, "").Filename)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger(&buf, "warn", false)
	logger.Info("hidden")
	logger.Warn("shown", "pair", "a.c:b.c")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "pair=a.c:b.c")

	buf.Reset()
	NewLogger(&buf, "error", true).Debug("verbose wins")
	assert.Contains(t, buf.String(), "verbose wins")
}

func TestConfigure(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	path := filepath.Join(t.TempDir(), "codesim.log")
	closer := Configure(config.DefaultConfig().Log, path, false)
	slog.Info("configured")
	assert.NoError(t, closer.Close())
	assert.FileExists(t, path)
}
