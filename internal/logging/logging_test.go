package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileLogger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "service.log")

	logger, closeFunc, err := NewFileLogger(logPath, "testservice", slog.LevelInfo)
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Info("written to file")
	require.NoError(t, closeFunc())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
	assert.Contains(t, string(data), `"service":"testservice"`)
}

func TestNewFileLoggerHonorsLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "service.log")
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)

	logger, closeFunc, err := NewFileLogger(logPath, "testservice", levelVar)
	require.NoError(t, err)

	logger.Info("filtered out")
	logger.Warn("kept")
	require.NoError(t, closeFunc())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "filtered out")
	assert.Contains(t, string(data), "kept")
}

func TestNewDiscardLogger(t *testing.T) {
	logger := NewDiscardLogger("quiet", slog.LevelDebug)
	require.NotNil(t, logger)
	logger.Info("goes nowhere")
}
