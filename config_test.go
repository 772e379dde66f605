package goPress

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gopress.yaml")

	content := []byte(`
api:
  base_url: "https://news.example.com/api"
  timeout: 30s
  login_path: "/signin"
session:
  vault_prefix: "newsapp"
events:
  enabled: true
  buffer_size: 128
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://news.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "/signin", cfg.API.LoginPath)
	assert.Equal(t, "newsapp", cfg.Session.VaultPrefix)
	assert.Equal(t, 128, cfg.Events.BufferSize)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gopress.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: \"https://file.example.com/api\"\n"), 0o600))

	t.Setenv("API_BASE_URL", "https://env.example.com/api")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com/api", cfg.API.BaseURL)
}

func TestLoadConfigEnvOnly(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://env-only.example.com/api")
	t.Setenv("SESSION_VAULT_FILE", "/tmp/session.json")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "https://env-only.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, "/tmp/session.json", cfg.Session.VaultFile)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout, "defaults apply without a file")
}

func TestLoadConfigMissingExplicitPath(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "missing scheme", mutate: func(c *Config) { c.API.BaseURL = "localhost:8000/api" }, wantErr: true},
		{name: "empty base url", mutate: func(c *Config) { c.API.BaseURL = "" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.API.Timeout = 0 }, wantErr: true},
		{name: "zero event buffer while enabled", mutate: func(c *Config) { c.Events.BufferSize = 0 }, wantErr: true},
		{name: "zero buffer while disabled", mutate: func(c *Config) { c.Events.Enabled = false; c.Events.BufferSize = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(&cfg)

			err := validateConfig(cfg)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
