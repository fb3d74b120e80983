// Package config loads the service configuration from YAML with
// environment-variable overrides for secrets.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port        int    `yaml:"port"`
		MetricsPort int    `yaml:"metrics_port"`
		UploadDir   string `yaml:"upload_dir"`
	} `yaml:"server"`

	Database struct {
		Dialect string `yaml:"dialect"` // sqlite3 or postgres
		DSN     string `yaml:"dsn"`
	} `yaml:"database"`

	Generation struct {
		Provider            string  `yaml:"provider"` // openai or azure
		Model               string  `yaml:"model"`
		BaseURL             string  `yaml:"base_url"`
		APIKey              string  `yaml:"api_key"`
		Deployment          string  `yaml:"deployment"` // azure only
		Endpoint            string  `yaml:"endpoint"`   // azure only
		MaxTokens           int     `yaml:"max_tokens"`
		Temperature         float64 `yaml:"temperature"`
		StageTimeoutSeconds int     `yaml:"stage_timeout_seconds"`
	} `yaml:"generation"`
}

// StageTimeout returns the per-stage deadline for external calls
func (c *Config) StageTimeout() time.Duration {
	return time.Duration(c.Generation.StageTimeoutSeconds) * time.Second
}

// Load reads the YAML file at path and applies defaults and
// environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.MetricsPort == 0 {
		c.Server.MetricsPort = 9090
	}
	if c.Database.Dialect == "" {
		c.Database.Dialect = "sqlite3"
	}
	if c.Database.DSN == "" {
		c.Database.DSN = "menuforge.db"
	}
	if c.Generation.Provider == "" {
		c.Generation.Provider = "openai"
	}
	if c.Generation.MaxTokens == 0 {
		c.Generation.MaxTokens = 4000
	}
	if c.Generation.Temperature == 0 {
		c.Generation.Temperature = 0.2
	}
	if c.Generation.StageTimeoutSeconds == 0 {
		c.Generation.StageTimeoutSeconds = 45
	}
}

// applyEnv lets secrets come from the environment instead of the file
func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.Generation.APIKey = v
	}
	if v := os.Getenv("AZURE_OPENAI_API_KEY"); v != "" && c.Generation.Provider == "azure" {
		c.Generation.APIKey = v
	}
	if v := os.Getenv("AZURE_OPENAI_ENDPOINT"); v != "" {
		c.Generation.Endpoint = v
	}
	if v := os.Getenv("AZURE_OPENAI_DEPLOYMENT_NAME"); v != "" {
		c.Generation.Deployment = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		c.Database.DSN = v
	}
}

func (c *Config) validate() error {
	switch c.Generation.Provider {
	case "openai", "azure":
	default:
		return fmt.Errorf("unknown generation provider %q", c.Generation.Provider)
	}
	switch c.Database.Dialect {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("unknown database dialect %q", c.Database.Dialect)
	}
	return nil
}
