package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"archive-keeper/storage"
)

const (
	defaultConfigPath = "config.yaml"
	defaultAddr       = ":5555"
)

// Config holds all application configuration.
type Config struct {
	Addr                string `yaml:"addr"`
	RulesPath           string `yaml:"rules_path"`
	PagesPath           string `yaml:"pages_path"`
	DBPath              string `yaml:"db_path"` // empty disables the SQLite mirror
	FlushOnShutdown     bool   `yaml:"flush_on_shutdown"`
	ShutdownTimeoutSecs int    `yaml:"shutdown_timeout_secs"`
}

// ShutdownTimeout is how long in-flight requests get on shutdown.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSecs) * time.Second
}

// GetConfigPath returns the config file path from environment or default.
func GetConfigPath() string {
	if path := os.Getenv("ARCHIVE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// Load reads configuration from a YAML file, applies defaults and then
// environment overrides. A missing file at the default path is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist) && path == defaultConfigPath:
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	applyDefaults(cfg)
	if err := applyEnvironmentOverrides(cfg); err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.RulesPath == "" {
		cfg.RulesPath = storage.DefaultRulesPath
	}
	if cfg.PagesPath == "" {
		cfg.PagesPath = storage.DefaultPagesPath
	}
	if cfg.ShutdownTimeoutSecs == 0 {
		cfg.ShutdownTimeoutSecs = 10
	}
}

func applyEnvironmentOverrides(cfg *Config) error {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Addr = ":" + port
	}
	if addr := strings.TrimSpace(os.Getenv("ARCHIVE_ADDR")); addr != "" {
		cfg.Addr = addr
	}
	if path := os.Getenv("ARCHIVE_RULES_PATH"); path != "" {
		cfg.RulesPath = path
	}
	if path := os.Getenv("ARCHIVE_PAGES_PATH"); path != "" {
		cfg.PagesPath = path
	}
	if path := os.Getenv("ARCHIVE_DB_PATH"); path != "" {
		cfg.DBPath = path
	}
	if raw := strings.TrimSpace(os.Getenv("ARCHIVE_FLUSH_ON_SHUTDOWN")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid ARCHIVE_FLUSH_ON_SHUTDOWN value %q: %w", raw, err)
		}
		cfg.FlushOnShutdown = v
	}
	if raw := strings.TrimSpace(os.Getenv("ARCHIVE_SHUTDOWN_TIMEOUT_SECS")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid ARCHIVE_SHUTDOWN_TIMEOUT_SECS value %q: %w", raw, err)
		}
		cfg.ShutdownTimeoutSecs = v
	}
	return nil
}

func validate(cfg *Config) error {
	if strings.Contains(cfg.Addr, " ") {
		return fmt.Errorf("invalid listen address %q", cfg.Addr)
	}
	if cfg.RulesPath == cfg.PagesPath {
		return fmt.Errorf("rules_path and pages_path must differ, both are %q", cfg.RulesPath)
	}
	if cfg.ShutdownTimeoutSecs < 0 {
		return fmt.Errorf("shutdown_timeout_secs must not be negative, got %d", cfg.ShutdownTimeoutSecs)
	}
	return nil
}
