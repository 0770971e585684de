// Package config provides configuration management for the AstraMine service.
package config

import (
	"fmt"

	"github.com/yourusername/astramine/internal/mining"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig                  `mapstructure:"app" validate:"required"`
	Server   ServerConfig               `mapstructure:"server" validate:"required"`
	Health   HealthConfig               `mapstructure:"health" validate:"required"`
	Metrics  MetricsConfig              `mapstructure:"metrics" validate:"required"`
	Defaults mining.OperatingParameters `mapstructure:"defaults" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ServerConfig represents the dashboard API listener
type ServerConfig struct {
	Host                string   `mapstructure:"host"`
	Port                int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds  int      `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	WriteTimeoutSeconds int      `mapstructure:"write_timeout_seconds" validate:"required,gt=0"`
	AllowedOrigins      []string `mapstructure:"allowed_origins" validate:"required,min=1"`
	RateLimitPerSecond  float64  `mapstructure:"rate_limit_per_second" validate:"required,gt=0"`
	RateLimitBurst      int      `mapstructure:"rate_limit_burst" validate:"required,gt=0"`
	ClientIdleMinutes   int      `mapstructure:"client_idle_minutes" validate:"required,gt=0"`
	// StrictBounds rejects out-of-domain parameters instead of clamping them.
	StrictBounds bool `mapstructure:"strict_bounds"`
}

// HealthConfig represents the health check listener
type HealthConfig struct {
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required,startswith=/"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// ServerAddress returns the host:port the API listens on
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// MetricsAddress returns the address of the metrics listener
func (c *Config) MetricsAddress() string {
	return fmt.Sprintf(":%d", c.Metrics.Port)
}

// DefaultParameters returns the configured starting scenario, clamped into
// the parameter domains.
func (c *Config) DefaultParameters() mining.OperatingParameters {
	return c.Defaults.Normalize()
}
