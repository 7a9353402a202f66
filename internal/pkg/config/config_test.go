package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store_name: FileStore
theme_color: "#000000"
notice_ttl: 3s
redis_addr: redis:6379
otel_enabled: true
`), 0o600))

	t.Setenv("STORE_NAME", "EnvStore")
	t.Setenv("HTTP_TIMEOUT", "2s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "EnvStore", cfg.StoreName)
	assert.Equal(t, "#000000", cfg.ThemeColor)
	assert.Equal(t, 3*time.Second, cfg.NoticeTTL)
	assert.Equal(t, 2*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.True(t, cfg.OTelEnabled)
	assert.Equal(t, "INR", cfg.Currency)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		path string
	}{
		{name: "missing file", path: filepath.Join(t.TempDir(), "nope.yaml")},
		{name: "bad duration", env: map[string]string{"NOTICE_TTL": "soon"}},
		{name: "bad bool", env: map[string]string{"OTEL_ENABLED": "maybe"}},
		{name: "non positive ttl", env: map[string]string{"NOTICE_TTL": "0s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(tt.path)
			assert.Error(t, err)
		})
	}
}
