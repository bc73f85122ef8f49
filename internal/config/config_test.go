package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps the developer's environment and working directory out of Load.
func isolate(t *testing.T) {
	t.Helper()
	for key := range envMappings {
		name := strings.ToUpper(key)
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	t.Setenv(ConfigPathEnvVar, "")
	os.Unsetenv(ConfigPathEnvVar)
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DefaultSessionSecret, cfg.Server.SessionSecret)
	assert.Equal(t, 30*24*time.Hour, cfg.Server.SessionMaxAge)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 1.0, cfg.RateLimit.Rate)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_Env(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "/tmp/gposync.db")
	t.Setenv("SESSION_MAX_AGE", "1h")
	t.Setenv("SECURE_COOKIES", "true")
	t.Setenv("BASE_URL", "https://sync.example.com/")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/gposync.db", cfg.Database.DSN)
	assert.Equal(t, time.Hour, cfg.Server.SessionMaxAge)
	assert.True(t, cfg.Server.SecureCookies)
	assert.Equal(t, "https://sync.example.com/", cfg.Server.BaseURL)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_File(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "gposync.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 7000
  login_url: https://cloud.example.com/login
database:
  driver: sqlite
  dsn: gposync.db
ratelimit:
  rate: 0
`), 0o600))
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("PORT", "7001")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7001, cfg.Server.Port, "env overrides file")
	assert.Equal(t, "https://cloud.example.com/login", cfg.Server.LoginURL)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "gposync.db", cfg.Database.DSN)
	assert.Equal(t, 0.0, cfg.RateLimit.Rate)
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)
	t.Setenv("DATABASE_DRIVER", "mysql")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database.driver")
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Server.Port = 0
	cfg.Database.DSN = ""
	cfg.Log.Format = "xml"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
	assert.Contains(t, err.Error(), "database.dsn")
	assert.Contains(t, err.Error(), "log.format")
}
