// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultAPIBaseURL is the public GitHub API root. A different value routes
// requests to a GitHub Enterprise instance (or a test server).
const DefaultAPIBaseURL = "https://api.github.com/"

// Config holds all configuration for the application.
type Config struct {
	LogLevel    string        `mapstructure:"LOG_LEVEL"`
	GithubToken string        `mapstructure:"GITHUB_TOKEN"`
	APIBaseURL  string        `mapstructure:"API_BASE_URL"`
	PageSize    int           `mapstructure:"PAGE_SIZE"`
	HTTPTimeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
	ListenAddr  string        `mapstructure:"LISTEN_ADDR"`
}

// LoadConfig reads configuration from file and/or environment variables.
// GITHUB_TOKEN is deliberately optional: without it requests run against the
// lower unauthenticated rate limit but behave identically otherwise.
func LoadConfig() (*Config, error) {
	// Set default values. GITHUB_TOKEN defaults to empty so the key is
	// registered and AutomaticEnv can pick it up without a .env file.
	viper.SetDefault("GITHUB_TOKEN", "")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("API_BASE_URL", DefaultAPIBaseURL)
	viper.SetDefault("PAGE_SIZE", 100)
	viper.SetDefault("HTTP_TIMEOUT", "0s")
	viper.SetDefault("LISTEN_ADDR", ":8080")

	// Load from .env file if it exists
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() // Ignore error if file not found

	// Bind environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate fields
	if cfg.APIBaseURL == "" {
		return nil, errors.New("API_BASE_URL must not be empty")
	}
	if cfg.PageSize < 1 || cfg.PageSize > 100 {
		return nil, fmt.Errorf("PAGE_SIZE must be between 1 and 100, got %d", cfg.PageSize)
	}
	if cfg.HTTPTimeout < 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT must not be negative, got %s", cfg.HTTPTimeout)
	}

	return &cfg, nil
}
