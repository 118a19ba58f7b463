package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Client  ClientConfig  `mapstructure:"client"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds the RapidAPI credentials for the movies API
type APIConfig struct {
	Key  string `mapstructure:"key"`
	Host string `mapstructure:"host"`
}

// ClientConfig tunes the per-attempt timeout, the retry schedule and the
// shared request budget
type ClientConfig struct {
	Timeout    time.Duration `mapstructure:"timeout"`
	RetryBase  time.Duration `mapstructure:"retry_base"`
	MaxRetries int           `mapstructure:"max_retries"`
	MaxDelay   time.Duration `mapstructure:"max_delay"`
	RatePerSec float64       `mapstructure:"rate_per_second"`
	RateBurst  int           `mapstructure:"rate_burst"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
