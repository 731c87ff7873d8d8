package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-backend/internal/config"
)

func TestNewParsesLevelAndFormat(t *testing.T) {
	log, err := New(config.LogConfig{Level: "DEBUG", Format: "json", Output: "stdout"})
	require.NoError(t, err)

	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
}

func TestNewFallsBackToInfo(t *testing.T) {
	log, err := New(config.LogConfig{Level: "chatty"})
	require.NoError(t, err)

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}

func TestNewWritesToRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")
	log, err := New(config.LogConfig{Level: "info", Format: "json", Output: "file", File: path, MaxSize: 1})
	require.NoError(t, err)

	log.WithField("op", "test").Info("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.Contains(t, string(data), `"op":"test"`)
}
