// Package config loads and validates the application configuration.
package config

import (
	"encoding/json"
	"fmt"
)

// Config represents the main Pastrami configuration
type Config struct {
	// Logging
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// Gateway
	Gateway GatewayConfig `json:"gateway" mapstructure:"gateway"`

	// Capability packages
	Packages PackagesConfig `json:"packages" mapstructure:"packages"`

	// Execution history
	History HistoryConfig `json:"history" mapstructure:"history"`

	// Data directory
	DataDir string `json:"data_dir" mapstructure:"data_dir"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string `json:"level" mapstructure:"level"`
	File    string `json:"file" mapstructure:"file"`
	Console bool   `json:"console" mapstructure:"console"`
	Pretty  bool   `json:"pretty" mapstructure:"pretty"`
}

// GatewayConfig holds the command-surface server configuration
type GatewayConfig struct {
	Addr         string `json:"addr" mapstructure:"addr"`
	SharedSecret string `json:"shared_secret" mapstructure:"shared_secret"`
}

// PackagesConfig selects which capability packages are mounted. A nil Enabled
// list means "all curated packages"; an explicitly empty list means none.
type PackagesConfig struct {
	Enabled []string `json:"enabled" mapstructure:"enabled"`
}

// HistoryConfig holds execution history configuration
type HistoryConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path"`
}

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			Console: true,
			Pretty:  true,
		},
		Gateway: GatewayConfig{
			Addr: "127.0.0.1:8799",
		},
		History: HistoryConfig{
			Enabled: true,
		},
	}
}

// String renders the config as indented JSON for diagnostics
func (c *Config) String() string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Sprintf("config marshal error: %v", err)
	}
	return string(data)
}
