// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"chemcost/internal/errors"
	"chemcost/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Database contains cost database configuration
	Database DatabaseConfig `json:"database"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// DatabaseConfig contains cost database settings
type DatabaseConfig struct {
	// Path is the cost database file to load. Empty means the built-in
	// elemental price table.
	Path string `json:"path,omitempty"`

	// Format is the database file format, "csv" or "hcl"
	Format string `json:"format"`

	// Currency is the currency code reported in output
	Currency string `json:"currency"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format"`

	// ShowDecomposition includes the cost breakdown per ingredient
	ShowDecomposition bool `json:"show_decomposition"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Database: DatabaseConfig{
			Path:     "",
			Format:   "csv",
			Currency: "USD",
		},
		Output: OutputConfig{
			DefaultFormat:     "table",
			ShowDecomposition: true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns the default location of the configuration file.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".chemcost", "config.json")
}

// Load loads configuration from a file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("failed to read config file", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Config("failed to parse config file", err)
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Config("failed to create config directory", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Config("failed to encode config", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Config("failed to write config file", err)
	}
	return nil
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
