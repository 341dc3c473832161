package config

import (
	"os"
)

// Config represents the application configuration
// This struct contains all configuration parameters for the application
type Config struct {
	// Directory holding the persisted ledger files
	DataDir string

	// Environment info
	Environment string

	// Logging configuration
	LogLevel string
}

// LoadFromEnv loads the configuration from environment variables
func LoadFromEnv() (*Config, error) {
	// Create a new config object and load values from environment
	cfg := &Config{}

	cfg.DataDir = os.Getenv("BANK_DATA_DIR")
	if cfg.DataDir == "" {
		cfg.DataDir = "." // Default to the working directory
	}

	cfg.Environment = os.Getenv("BANK_ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "dev" // Default to dev environment
	}

	cfg.LogLevel = os.Getenv("BANK_LOG_LEVEL")
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}
