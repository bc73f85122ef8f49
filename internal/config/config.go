// Package config loads server settings from defaults, an optional YAML file
// and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"time"
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Log       LogConfig       `koanf:"log"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
	// BaseURL is the public root handed to NextCloud clients. Derived from
	// the request when empty.
	BaseURL string `koanf:"base_url"`
	// LoginURL is the page completing NextCloud logins; "<base>login" when empty.
	LoginURL        string        `koanf:"login_url"`
	SessionSecret   string        `koanf:"session_secret"`
	SessionMaxAge   time.Duration `koanf:"session_max_age"`
	SecureCookies   bool          `koanf:"secure_cookies"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver string `koanf:"driver"` // postgres or sqlite
	DSN    string `koanf:"dsn"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json or console
}

// RateLimitConfig limits login attempts per client IP. Rate <= 0 disables it.
type RateLimitConfig struct {
	Rate  float64 `koanf:"rate"`
	Burst int     `koanf:"burst"`
	Size  int     `koanf:"size"`
}

const DefaultSessionSecret = "secret_key_change_me"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			SessionSecret:   DefaultSessionSecret,
			SessionMaxAge:   30 * 24 * time.Hour,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver: "postgres",
			DSN:    "host=localhost user=postgres password=postgres dbname=gposync port=5432 sslmode=disable",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		RateLimit: RateLimitConfig{
			Rate:  1,
			Burst: 5,
			Size:  4096,
		},
	}
}

func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Server.SessionSecret == "" {
		errs = append(errs, errors.New("server.session_secret must not be empty"))
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unsupported database.driver %q", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database.dsn must not be empty"))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("unsupported log.format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
