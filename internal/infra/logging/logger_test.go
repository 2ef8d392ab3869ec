package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"WARN", slog.LevelWarn},    // case-insensitive
		{"unknown", slog.LevelInfo}, // default
		{"", slog.LevelInfo},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestLogger_Info(t *testing.T) {
	deskhubDir := t.TempDir()
	logger := New(deskhubDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Info("abc123", "store", "test message")

	content, err := os.ReadFile(filepath.Join(deskhubDir, "logs", "deskhub.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[INFO]")
	assert.Contains(t, string(content), "[task-abc123]")
	assert.Contains(t, string(content), "[store]")
	assert.Contains(t, string(content), "test message")

	taskContent, err := os.ReadFile(filepath.Join(deskhubDir, "logs", "task-abc123.log"))
	require.NoError(t, err)
	assert.Contains(t, string(taskContent), "test message")
}

func TestLogger_GlobalLogOnly(t *testing.T) {
	deskhubDir := t.TempDir()
	logger := New(deskhubDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Info("", "system", "global message")

	content, err := os.ReadFile(filepath.Join(deskhubDir, "logs", "deskhub.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[global]")
	assert.Contains(t, string(content), "global message")

	entries, err := os.ReadDir(filepath.Join(deskhubDir, "logs"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLogger_LevelFiltering(t *testing.T) {
	deskhubDir := t.TempDir()
	logger := New(deskhubDir, slog.LevelWarn)
	defer func() { _ = logger.Close() }()

	logger.Debug("", "system", "debug message")
	logger.Info("", "system", "info message")
	logger.Warn("", "system", "warn message")

	content, err := os.ReadFile(filepath.Join(deskhubDir, "logs", "deskhub.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "debug message")
	assert.NotContains(t, string(content), "info message")
	assert.Contains(t, string(content), "warn message")
}

func TestLogger_DisabledWhenDirEmpty(t *testing.T) {
	logger := New("", slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	// Must not panic or create files.
	logger.Info("1", "store", "nowhere")
}
