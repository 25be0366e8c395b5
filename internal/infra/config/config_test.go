package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadFromFileWithEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9090"
  allowedOrigins: ["https://mixsmart.example"]
auth:
  secret: "from-file"
bac:
  summaryTtl: 30m
cache:
  enabled: true
  addr: "localhost:6379"
`), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("AUTH_SECRET", "from-env")
	t.Setenv("HTTP_RATE_LIMIT_RPM", "10")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, []string{"https://mixsmart.example"}, cfg.HTTP.AllowedOrigins)
	require.Equal(t, "from-env", cfg.Auth.Secret)
	require.Equal(t, 30*time.Minute, cfg.BAC.SummaryTTL)
	require.True(t, cfg.Cache.Enabled)
	require.Equal(t, 10, cfg.HTTP.RateLimit.RequestsPerMinute)
	require.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestValidateRejectsBadConfig(t *testing.T) {
	cfg := defaultConfig()
	require.EqualError(t, cfg.Validate(), "auth.secret cannot be empty")

	cfg.Auth.Secret = "s"
	require.NoError(t, cfg.Validate())

	cfg.Cache.Enabled = true
	require.Error(t, cfg.Validate())
	cfg.Cache.Enabled = false

	cfg.BAC.SummaryTTL = -time.Second
	require.Error(t, cfg.Validate())
}

func TestSplitList(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
}
