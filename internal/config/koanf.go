package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/gposync/config.yaml",
}

const ConfigPathEnvVar = "CONFIG_PATH"

// envMappings maps environment variables to koanf keys. Variables not listed
// here are ignored.
var envMappings = map[string]string{
	"port":             "server.port",
	"base_url":         "server.base_url",
	"login_url":        "server.login_url",
	"session_secret":   "server.session_secret",
	"session_max_age":  "server.session_max_age",
	"secure_cookies":   "server.secure_cookies",
	"shutdown_timeout": "server.shutdown_timeout",
	"database_driver":  "database.driver",
	"database_url":     "database.dsn",
	"log_level":        "log.level",
	"log_format":       "log.format",
	"login_rate":       "ratelimit.rate",
	"login_burst":      "ratelimit.burst",
}

// Load builds the configuration: struct defaults, then the YAML file, then
// environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
