package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownGracePeriod)
	assert.Equal(t, int64(102400), cfg.Server.MaxBodySize)
	assert.Equal(t, 30*time.Second, cfg.Server.CheckTimeout)
	assert.False(t, cfg.Server.Debug)

	assert.Empty(t, cfg.Resolver.Nameserver)
	assert.Equal(t, 4*time.Second, cfg.Resolver.Timeout)

	assert.Empty(t, cfg.Slack.WebhookURL)
	assert.Equal(t, 10*time.Second, cfg.Slack.RequestTimeout)
	assert.True(t, cfg.Slack.NotifyWeakKeys)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	path := "/nonexistent/config.yaml"

	cfg, err := Load(&path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Listen)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server:
  listen: ":9090"
  read_timeout: 45s
resolver:
  nameserver: "1.1.1.1"
  timeout: 2s
slack:
  webhook_url: "https://hooks.slack.example/services/T/B/X"
  notify_weak_keys: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(&path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Listen)
	assert.Equal(t, 45*time.Second, cfg.Server.ReadTimeout)
	// Untouched keys keep their defaults
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)

	assert.Equal(t, "1.1.1.1", cfg.Resolver.Nameserver)
	assert.Equal(t, 2*time.Second, cfg.Resolver.Timeout)

	assert.Equal(t, "https://hooks.slack.example/services/T/B/X", cfg.Slack.WebhookURL)
	assert.False(t, cfg.Slack.NotifyWeakKeys)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DKIMCHECK_SERVER__LISTEN", ":7070")
	t.Setenv("DKIMCHECK_SERVER__READ_TIMEOUT", "90s")
	t.Setenv("DKIMCHECK_RESOLVER__NAMESERVER", "9.9.9.9:53")
	t.Setenv("DKIMCHECK_SLACK__WEBHOOK_URL", "https://hooks.slack.example/services/env")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Listen)
	assert.Equal(t, 90*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "9.9.9.9:53", cfg.Resolver.Nameserver)
	assert.Equal(t, "https://hooks.slack.example/services/env", cfg.Slack.WebhookURL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("resolver:\n  timeout: 2s\n"), 0600))

	t.Setenv("DKIMCHECK_RESOLVER__TIMEOUT", "8s")

	cfg, err := Load(&path)
	require.NoError(t, err)

	assert.Equal(t, 8*time.Second, cfg.Resolver.Timeout)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0600))

	_, err := Load(&path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigLoad)
}
