package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
dbname = "riverrun"
user = "park"
password = "secret"

[booking]
qr_secret = "gate-key"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 30, cfg.Cart.TTLMinutes)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, "host=localhost port=5432 user=park password=secret dbname=riverrun sslmode=disable", cfg.Database.DSN())
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
dbname = "riverrun"

[metrics]
enabled = true
path = "/internal/metrics"

[cors]
allowed_origins = ["https://park.example.com"]

[booking]
qr_secret = "gate-key"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/internal/metrics", cfg.Metrics.Path)
	assert.Equal(t, []string{"https://park.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_ValidationErrors(t *testing.T) {
	path := writeConfig(t, `
[payment_service]
enabled = true
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.dbname is required")
	assert.Contains(t, err.Error(), "booking.qr_secret is required")
	assert.Contains(t, err.Error(), "payment_service.url is required")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
