package config

import (
	"os"
	"strconv"

	"cleansheet/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Data   DataConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
}

// DataConfig holds data processing settings
type DataConfig struct {
	FilePath       string // default input file for the CLI
	ExportDir      string
	CleanByDefault bool
	Workers        int // column fan-out bound, 0 = NumCPU
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Data: DataConfig{
			FilePath:       os.Getenv("DATA_FILE"),
			ExportDir:      getEnv("EXPORT_DIR", "exports"),
			CleanByDefault: getEnvBool("CLEAN_BY_DEFAULT", true),
			Workers:        getEnvInt("CLEAN_WORKERS", 0),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.ConfigInvalid("server port cannot be empty")
	}
	if c.Data.Workers < 0 {
		return errors.ConfigInvalid("CLEAN_WORKERS cannot be negative")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
