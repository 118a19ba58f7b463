package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/movq/moviefetch/moviesdb"
)

// Load loads the configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".moviesdb"))
		}

		// Check /etc
		v.AddConfigPath("/etc/moviesdb/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.host", moviesdb.DefaultHost)

	// Client defaults
	v.SetDefault("client.timeout", moviesdb.DefaultTimeout)
	v.SetDefault("client.retry_base", moviesdb.DefaultBackoffBase)
	v.SetDefault("client.max_retries", moviesdb.DefaultMaxRetries)
	v.SetDefault("client.max_delay", moviesdb.DefaultMaxDelay)
	v.SetDefault("client.rate_per_second", 0.0)
	v.SetDefault("client.rate_burst", 1)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.API.Key == "" || cfg.API.Key == "your-api-key-here" {
		return fmt.Errorf("api.key must be set to a valid RapidAPI key")
	}

	if cfg.API.Host == "" {
		return fmt.Errorf("api.host is required")
	}

	if cfg.Client.Timeout < time.Millisecond {
		return fmt.Errorf("client.timeout is too small: %s", cfg.Client.Timeout)
	}

	if cfg.Client.MaxRetries < 0 {
		return fmt.Errorf("client.max_retries must be >= 0")
	}

	if cfg.Client.RatePerSec < 0 {
		return fmt.Errorf("client.rate_per_second must be >= 0")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// Backoff converts the client settings into the core retry schedule.
func (c ClientConfig) Backoff() moviesdb.BackoffPolicy {
	return moviesdb.BackoffPolicy{
		Base:       c.RetryBase,
		MaxRetries: c.MaxRetries,
		MaxDelay:   c.MaxDelay,
	}
}
