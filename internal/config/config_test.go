package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.RecordEvents)
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, 2*time.Second, cfg.Model.Timeout)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uniguide.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db_path: /tmp/from-file.db
record_events: false
model:
  path: /models/risk.json
  timeout: 5s
  confidence_scale: fraction
server:
  listen: ":9090"
log:
  level: debug
  format: json
`), 0o644))

	t.Setenv("UNIGUIDE_LISTEN", ":7070")
	t.Setenv("UNIGUIDE_MODEL_URL", "http://inference:8000")
	t.Setenv("UNIGUIDE_MODEL_CONFIDENCE_SCALE", "percent")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-file.db", cfg.DBPath)
	assert.False(t, cfg.RecordEvents)
	assert.Equal(t, "/models/risk.json", cfg.Model.Path)
	assert.Equal(t, 5*time.Second, cfg.Model.Timeout)
	assert.Equal(t, "http://inference:8000", cfg.Model.URL)
	assert.Equal(t, "percent", cfg.Model.ConfidenceScale, "env overrides file")
	assert.Equal(t, ":7070", cfg.Server.Listen, "env overrides file")
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log.Level = "loud"
	cfg.Log.Format = "xml"
	cfg.Server.Listen = ""
	cfg.Model.ConfidenceScale = "permille"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
	assert.Contains(t, err.Error(), "xml")
	assert.Contains(t, err.Error(), "listen")
	assert.Contains(t, err.Error(), "permille")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
