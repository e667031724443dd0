package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crossgen.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":5001", cfg.Addr)
	assert.Equal(t, 21, cfg.Grid.Size)
	assert.Equal(t, 0.16, cfg.Grid.BlackRatio)
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GCP_PROJECT_ID", "")
	t.Setenv("GCP_REGION", "")

	path := writeConfig(t, `
addr = ":9000"
log_level = "debug"

[grid]
size = 15
black_ratio = 0.2

[limits]
read_timeout = "3s"

[gemini]
project = "my-project"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 15, cfg.Grid.Size)
	assert.Equal(t, 0.2, cfg.Grid.BlackRatio)
	assert.Equal(t, DefaultMaxAttempts, cfg.Grid.MaxAttempts, "unset keys keep defaults")
	assert.Equal(t, 3*time.Second, cfg.Limits.ReadTimeout.Duration)
	assert.Equal(t, "my-project", cfg.Gemini.Project)
	assert.Equal(t, defaultRegion, cfg.Gemini.Region)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("GCP_PROJECT_ID", "env-project")
	t.Setenv("GCP_REGION", "us-central1")

	cfg, err := LoadConfig(writeConfig(t, `addr = ":9000"`))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "env-project", cfg.Gemini.Project)
	assert.Equal(t, "us-central1", cfg.Gemini.Region)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Setenv("PORT", "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, `addr = `))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "[limits]\nread_timeout = \"soon\""))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grid.Size = 0
	cfg.Grid.BlackRatio = 1.5
	cfg.Grid.MaxAttempts = 0
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRatio)
	assert.Contains(t, err.Error(), "grid.size")
	assert.Contains(t, err.Error(), "grid.max_attempts")
	assert.Contains(t, err.Error(), "log_level")
}
