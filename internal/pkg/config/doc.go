// Package config provides functionality for loading and managing application configuration.
//
// Settings are read from YAML files under configs/, overlaid with environment
// variables and validated before use. The package also owns the pipeline
// definition file format used by the basket-cli ci commands.
package config
