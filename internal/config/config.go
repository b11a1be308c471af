// Package config loads process configuration from the environment and an optional .env file using Viper.
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds the settings the membersearch command needs.
type Config struct {
	// StorageConfig is the path to the storage provider JSON ({"provider": ..., "configuration": ...}).
	StorageConfig string `mapstructure:"STORAGE_CONFIG"`
	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `mapstructure:"LOG_LEVEL"`
	// LogFormat is "json" or "console".
	LogFormat string `mapstructure:"LOG_FORMAT"`
	// FetchTimeout bounds a whole search or import run.
	FetchTimeout time.Duration `mapstructure:"FETCH_TIMEOUT"`
}

// Load reads .env (if present), then builds and validates Config from the environment.
// Env vars override .env.
func Load() (*Config, error) {
	return load(".env")
}

func load(envFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	_ = v.ReadInConfig() // a missing .env is fine

	v.AutomaticEnv()

	v.SetDefault("STORAGE_CONFIG", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("FETCH_TIMEOUT", "30s")

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate returns an error if required fields are missing or out of range.
func (c *Config) Validate() error {
	if c.StorageConfig == "" {
		return errors.New("STORAGE_CONFIG is required")
	}
	if c.FetchTimeout <= 0 {
		return errors.New("FETCH_TIMEOUT must be positive")
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return errors.New("LOG_FORMAT must be json or console")
	}
	return nil
}
