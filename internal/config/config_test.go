package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, 3000, cfg.Web.ListenPort)
	assert.Equal(t, "Toto", cfg.Web.DisplayName)
	assert.Equal(t, 3*time.Second, cfg.Web.SlowDelay)
	assert.Equal(t, "dist", cfg.Web.StaticDir)
	assert.False(t, cfg.Web.SSL)
	require.NoError(t, cfg.Validate())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultListenPort, cfg.Web.ListenPort)
	assert.Equal(t, DefaultDisplayName, cfg.Web.DisplayName)
	assert.Equal(t, DefaultSlowDelay, cfg.Web.SlowDelay)
	assert.Equal(t, "json", cfg.Web.AccessLog)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.PprofAddr)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `web:
  listen_port: 8088
  display_name: Titi
  slow_delay: 500ms
  access_log: apache
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 8088, cfg.Web.ListenPort)
	assert.Equal(t, "Titi", cfg.Web.DisplayName)
	assert.Equal(t, 500*time.Millisecond, cfg.Web.SlowDelay)
	assert.Equal(t, "apache", cfg.Web.AccessLog)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("web:\n  listen_port: 8088\n"), 0o644))
	t.Setenv("ISLANDS_WEB_LISTEN_PORT", "9090")
	t.Setenv("ISLANDS_WEB_DISPLAY_NAME", "Tata")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Web.ListenPort)
	assert.Equal(t, "Tata", cfg.Web.DisplayName)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{"port too low", map[string]string{"ISLANDS_WEB_LISTEN_PORT": "80"}},
		{"port too high", map[string]string{"ISLANDS_WEB_LISTEN_PORT": "70000"}},
		{"ssl without cert", map[string]string{"ISLANDS_WEB_SSL": "true"}},
		{"zero delay", map[string]string{"ISLANDS_WEB_SLOW_DELAY": "0s"}},
		{"unknown access log", map[string]string{"ISLANDS_WEB_ACCESS_LOG": "xml"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load(t.TempDir())
			assert.Error(t, err)
		})
	}
}

func TestWebConfigAddr(t *testing.T) {
	w := WebConfig{ListenPort: 3000}
	assert.Equal(t, ":3000", w.Addr())
}
