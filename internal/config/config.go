package config

import (
	"os"
	"strconv"
	"strings"

	"nqdsheat/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data    DataConfig
	View    ViewConfig
	Logging LoggingConfig
}

// DataConfig holds input parsing settings
type DataConfig struct {
	// MaxModels stops a load at the first record whose model exceeds it. 0 means unlimited.
	MaxModels int
	// HeaderLines is the number of leading metadata lines skipped in every source.
	HeaderLines int
	// SourceFile is an optional default input path.
	SourceFile string
}

// ViewConfig holds defaults applied when a view request leaves a field unset
type ViewConfig struct {
	DefaultMode  string
	DefaultOrder string
	DefaultKind  string
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level string
}

// Default returns the configuration used when no environment is set.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			MaxModels:   0,
			HeaderLines: 3,
		},
		View: ViewConfig{
			DefaultMode:  "max",
			DefaultOrder: "default",
			DefaultKind:  "wells-models",
		},
		Logging: LoggingConfig{Level: "INFO"},
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data:    *loadDataConfig(),
		View:    *loadViewConfig(),
		Logging: LoggingConfig{Level: getEnvOrDefault("LOG_LEVEL", "INFO")},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		MaxModels:   getEnvIntOrDefault("NQDS_MAX_MODELS", 0),
		HeaderLines: getEnvIntOrDefault("NQDS_HEADER_LINES", 3),
		SourceFile:  getEnvOrDefault("NQDS_FILE", ""),
	}
}

func loadViewConfig() *ViewConfig {
	return &ViewConfig{
		DefaultMode:  strings.ToLower(getEnvOrDefault("NQDS_DEFAULT_MODE", "max")),
		DefaultOrder: strings.ToLower(getEnvOrDefault("NQDS_DEFAULT_ORDER", "default")),
		DefaultKind:  strings.ToLower(getEnvOrDefault("NQDS_DEFAULT_KIND", "wells-models")),
	}
}

func validateConfig(config *Config) error {
	if config.Data.MaxModels < 0 {
		return errors.ConfigInvalid("NQDS_MAX_MODELS must not be negative")
	}
	if config.Data.HeaderLines < 0 {
		return errors.ConfigInvalid("NQDS_HEADER_LINES must not be negative")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
