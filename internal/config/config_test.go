package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
app:
  name: roombooker
  environment: production
  version: "1.2.3"
http:
  port: 8080
database:
  path: /data/bookings.db
redis:
  address: localhost:6379
  db: 2
auth:
  username: hostess
  password: secret
logging:
  level: debug
  format: json
monitoring:
  prometheus_enabled: true
seed:
  enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "roombooker", cfg.App.Name)
	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "/data/bookings.db", cfg.Database.Path)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "hostess", cfg.Auth.Username)
	assert.Equal(t, "secret", cfg.Auth.Password)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Seed.Enabled)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  path: bookings.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "roombooker", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 3001, cfg.HTTP.Port)
	assert.Equal(t, "admin", cfg.Auth.Username)
	assert.Equal(t, "password123", cfg.Auth.Password)
	assert.Equal(t, "configs/seed.yaml", cfg.Seed.NamesPath)
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("BOOKING_DB_PATH", "/tmp/env.db")
	t.Setenv("BOOKING_PASSWORD", "fromenv")

	path := writeConfig(t, `
database:
  path: ${BOOKING_DB_PATH}
auth:
  username: admin
  password: ${BOOKING_PASSWORD}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.db", cfg.Database.Path)
	assert.Equal(t, "fromenv", cfg.Auth.Password)
}

func TestLoadRequiresDatabasePath(t *testing.T) {
	path := writeConfig(t, `
app:
  name: roombooker
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database path is required")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestPrometheusPortDefaultOnlyWhenEnabled(t *testing.T) {
	path := writeConfig(t, `
database:
  path: bookings.db
monitoring:
  prometheus_enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Monitoring.PrometheusPort)

	path = writeConfig(t, `
database:
  path: bookings.db
`)
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Zero(t, cfg.Monitoring.PrometheusPort)
}
