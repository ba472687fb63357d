package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// RestConfig holds the configuration for the basket REST API.
type RestConfig struct {
	Port string `yaml:"port" env:"BASKET_PORT" validate:"required"`
	// SuperToken gates the debug-user endpoint. Empty disables it.
	SuperToken string           `yaml:"supertoken" env:"BASKET_SUPERTOKEN"`
	Database   DatabaseSettings `yaml:"database"`
	Logger     LoggerSettings   `yaml:"logger"`
}

// Validate checks that all sections of the REST configuration are valid
func (c *RestConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("invalid database settings: %w", err)
	}
	if err := c.Logger.Validate(); err != nil {
		return fmt.Errorf("invalid logger settings: %w", err)
	}
	return nil
}

// InitializeRestConfig loads the REST API configuration from a YAML file,
// applies environment variable overrides and validates the result.
func InitializeRestConfig(configPath string) (*RestConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	cfg := &RestConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	// Environment variables win over file values
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
