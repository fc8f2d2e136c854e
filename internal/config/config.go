package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Logging LogConfig
	Files   FilesConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port      string `envconfig:"PORT" default:"8000"`
	Host      string `envconfig:"HOST" default:"0.0.0.0"`
	RateRPS   int    `envconfig:"RATE_LIMIT_RPS" default:"100"`
	RateBurst int    `envconfig:"RATE_LIMIT_BURST" default:"200"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// FilesConfig holds file-operation defaults.
//
// CaseMode selects the filename matching policy: "auto" follows the host
// platform, "sensitive" and "insensitive" force a policy regardless of it.
type FilesConfig struct {
	BaseDir  string `envconfig:"FILES_BASE_DIR" default:""`
	CaseMode string `envconfig:"FILES_CASE_MODE" default:"auto"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:      "8000",
			Host:      "0.0.0.0",
			RateRPS:   100,
			RateBurst: 200,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		Files: FilesConfig{
			BaseDir:  "",
			CaseMode: "auto",
		},
	}
}

func (c *Config) validate() error {
	switch c.Files.CaseMode {
	case "auto", "sensitive", "insensitive":
		return nil
	default:
		return fmt.Errorf("invalid FILES_CASE_MODE %q: must be auto, sensitive or insensitive", c.Files.CaseMode)
	}
}
