// Package config loads process configuration: the registry endpoint to
// pull from, optional static credentials, and logging options.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/wuxler/imgpull/pkg/xlog"
)

// Config is the process-level configuration for a pull/unpack run.
type Config struct {
	// Registry is the base URL of the registry to pull from, e.g.
	// "https://registry-1.docker.io".
	Registry string `yaml:"registry"`

	// Username and Password are static credentials read from the file or
	// the environment. Nothing in this module sends them to the registry;
	// authentication uses the bearer-token challenge flow only.
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"logLevel,omitempty"`
	// LogPath, when set, also writes logs to a rotating file at this path.
	LogPath string `yaml:"logPath,omitempty"`
}

// Default values used when a Config field and its matching environment
// variable are both unset.
const (
	DefaultRegistry = "https://registry-1.docker.io"
	DefaultLogLevel = "info"
)

// Load reads a YAML config document from path, then applies environment
// variable overrides (IMGPULL_REGISTRY, IMGPULL_USERNAME, IMGPULL_PASSWORD,
// IMGPULL_LOG_LEVEL, IMGPULL_LOG_PATH). A missing file is not an error;
// Load falls back to defaults plus whatever environment variables are set.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Registry: DefaultRegistry,
		LogLevel: DefaultLogLevel,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parsing %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Fine: env vars and defaults still apply.
		default:
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	applyEnvOverride(&cfg.Registry, "IMGPULL_REGISTRY")
	applyEnvOverride(&cfg.Username, "IMGPULL_USERNAME")
	applyEnvOverride(&cfg.Password, "IMGPULL_PASSWORD")
	applyEnvOverride(&cfg.LogLevel, "IMGPULL_LOG_LEVEL")
	applyEnvOverride(&cfg.LogPath, "IMGPULL_LOG_PATH")

	return cfg, nil
}

func applyEnvOverride(field *string, envVar string) {
	if v, ok := os.LookupEnv(envVar); ok {
		*field = v
	}
}

// SlogLevel coerces LogLevel into a slog.Level via cast, defaulting to Info
// for an empty or unrecognized value.
func (c *Config) SlogLevel() slog.Level {
	switch cast.ToString(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// XLogConfig builds the xlog.Config this Config describes, starting from
// xlog's own defaults and overriding only what this Config controls.
func (c *Config) XLogConfig() xlog.Config {
	cfg := xlog.NewConfig()
	cfg.Level = c.SlogLevel()
	cfg.Path = c.LogPath
	return cfg
}
