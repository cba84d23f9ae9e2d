package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serenity/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestNewHandlerJSON(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewHandler(&buf, "json", slog.LevelInfo))
	l.Debug("hidden")
	l.Info("cache hit", "key", "exams")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "cache hit", line["msg"])
	assert.Equal(t, "exams", line["key"])
}

func TestInitWritesToFile(t *testing.T) {
	prev := Logger
	t.Cleanup(func() {
		_ = Close()
		Logger = prev
		slog.SetDefault(prev)
	})

	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Log.Output = "file"
	cfg.Log.FilePath = filepath.Join(t.TempDir(), "logs", "serenity.log")

	require.NoError(t, Init(cfg))
	Info("started", "port", 8080)
	require.NoError(t, Close())

	data, err := os.ReadFile(cfg.Log.FilePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "started")
	assert.Contains(t, string(data), "port=8080")
}
