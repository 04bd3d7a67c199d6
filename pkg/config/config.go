// Package config provides centralized configuration management for the Multilead MCP server.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultBaseURL is the public Multilead Open API endpoint.
	DefaultBaseURL = "https://api.multilead.io/api/open-api/v1"

	// DefaultTimeout bounds a single upstream request, in seconds.
	DefaultTimeout = 30
)

// Config holds the complete configuration for the server. It is constructed
// once at startup and never mutated afterwards; every component receives it
// explicitly rather than reading a process-wide singleton.
type Config struct {
	// Multilead API connection
	APIKey  string
	BaseURL string
	Timeout int
	Debug   bool

	// Process settings
	Transport string
	Host      string
	Port      int
	LogLevel  string
}

// Load reads the configuration from environment variables and applies
// defaults. It returns an error when MULTILEAD_API_KEY is absent: the server
// has no way to operate without credentials, and failing here beats surfacing
// confusing authentication errors on the first tool call.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("multilead_base_url", DefaultBaseURL)
	v.SetDefault("multilead_timeout", DefaultTimeout)
	v.SetDefault("multilead_debug", false)
	v.SetDefault("transport", "stdio")
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8000)
	v.SetDefault("log_level", "info")

	v.AutomaticEnv()

	cfg := &Config{
		APIKey:    v.GetString("multilead_api_key"),
		BaseURL:   strings.TrimRight(v.GetString("multilead_base_url"), "/"),
		Timeout:   v.GetInt("multilead_timeout"),
		Debug:     v.GetBool("multilead_debug"),
		Transport: strings.ToLower(v.GetString("transport")),
		Host:      v.GetString("host"),
		Port:      v.GetInt("port"),
		LogLevel:  strings.ToLower(v.GetString("log_level")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the invariants a usable configuration must hold.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("MULTILEAD_API_KEY environment variable is required; set it in your environment or .env file")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("MULTILEAD_TIMEOUT must be a positive number of seconds, got %d", c.Timeout)
	}

	if c.Transport != "stdio" {
		return fmt.Errorf("invalid TRANSPORT value %q: only 'stdio' is supported", c.Transport)
	}

	return nil
}

// RequestTimeout returns the configured timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
