package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DB_DSN", "")
	t.Setenv("CLASSIFIER_URL", "")
	t.Chdir(t.TempDir())

	cfg := LoadFile("does-not-exist.yaml")

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 100, cfg.Cache.MaxSize)
	assert.Equal(t, 86400, cfg.Cache.TTLSec)
	assert.Equal(t, 10, cfg.Scraper.TimeoutSec)
	assert.Equal(t, 30, cfg.Stress.MaxHistory)
	assert.Equal(t, 50, cfg.Chat.TranscriptLimit)
	assert.False(t, cfg.DB.Enabled)
	assert.Empty(t, cfg.DB.DSN)
}

func TestLoadFileYAMLAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: 127.0.0.1
  port: 9000
database:
  enabled: true
  host: db.local
  port: 3306
  username: app
  password: from-file
  database: serenity
  parse_time: true
cache:
  max_size: 10
  ttl_sec: 60
stress:
  classifier_url: http://classifier.local/predict
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("DATABASE_PASSWORD", "from-env")
	t.Setenv("CLASSIFIER_API_KEY", "secret")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DB_DSN", "")
	t.Setenv("CLASSIFIER_URL", "")

	cfg := LoadFile(path)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Cache.MaxSize)
	assert.Equal(t, 60, cfg.Cache.TTLSec)
	assert.Equal(t, "secret", cfg.Stress.APIKey)
	assert.Equal(t, "http://classifier.local/predict", cfg.Stress.ClassifierURL)
	assert.Equal(t, "app:from-env@tcp(db.local:3306)/serenity?charset=utf8mb4&parseTime=true", cfg.DB.DSN)
}

func TestLoadFileInvalidYAMLFallsBackToEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0o644))
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("DB_DSN", "u:p@tcp(h:1)/d")
	t.Setenv("CLASSIFIER_URL", "")

	cfg := LoadFile(path)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.True(t, cfg.DB.Enabled)
	assert.Equal(t, "u:p@tcp(h:1)/d", cfg.DB.DSN)
}
