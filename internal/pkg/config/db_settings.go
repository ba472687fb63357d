package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// DatabaseSettings holds the connection settings for the basket database.
// Type selects the driver; DSN is passed through to it. Name is the database
// to create and use when the DSN connects to a server without one (the
// provisioning step the CI pipeline performs with `CREATE DATABASE basket`).
type DatabaseSettings struct {
	Type string `yaml:"type" env:"BASKET_DB_TYPE" validate:"required,oneof=mysql postgres sqlite"`
	DSN  string `yaml:"dsn" env:"BASKET_DB_DSN"`
	Name string `yaml:"name" env:"BASKET_DB_NAME"`
}

// Validate checks that all fields in DatabaseSettings are valid
func (s *DatabaseSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for DatabaseSettings: %w", err)
	}

	if s.Type != SqliteDbType && s.DSN == "" {
		return fmt.Errorf("dsn is required for %s databases", s.Type)
	}

	return nil
}
