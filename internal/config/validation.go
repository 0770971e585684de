// Package config provides configuration management for the AstraMine service.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/yourusername/astramine/internal/mining"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() (*CustomValidator, error) {
	v := validator.New()

	if err := v.RegisterValidation("environment", validateEnvironment); err != nil {
		return nil, fmt.Errorf("register environment validation: %w", err)
	}
	if err := v.RegisterValidation("loglevel", validateLogLevel); err != nil {
		return nil, fmt.Errorf("register loglevel validation: %w", err)
	}
	if err := mining.RegisterValidations(v); err != nil {
		return nil, err
	}

	return &CustomValidator{validator: v}, nil
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv, err := NewValidator()
	if err != nil {
		return err
	}
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	ports := map[int]string{cfg.Server.Port: "server.port"}
	if other, ok := ports[cfg.Health.Port]; ok {
		return fmt.Errorf("health.port %d collides with %s", cfg.Health.Port, other)
	}
	ports[cfg.Health.Port] = "health.port"
	if cfg.Metrics.Enabled {
		if other, ok := ports[cfg.Metrics.Port]; ok {
			return fmt.Errorf("metrics.port %d collides with %s", cfg.Metrics.Port, other)
		}
	}

	if float64(cfg.Server.RateLimitBurst) < cfg.Server.RateLimitPerSecond {
		return fmt.Errorf("rate_limit_burst (%d) cannot be below rate_limit_per_second (%g)",
			cfg.Server.RateLimitBurst, cfg.Server.RateLimitPerSecond)
	}

	if cfg.IsProduction() {
		for _, origin := range cfg.Server.AllowedOrigins {
			if origin == "*" {
				return fmt.Errorf("production environment requires explicit allowed_origins, not '*'")
			}
		}
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg string
	for _, fieldError := range validationErrors {
		field := fieldError.Namespace()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			errMsg += fmt.Sprintf("- Field '%s' is required\n", field)
		case "min", "max":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s=%s violated, got %v\n",
				field, tag, fieldError.Param(), value)
		case "environment":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "coin":
			errMsg += fmt.Sprintf("- Field '%s' names an unknown coin '%v'\n", field, value)
		case "startswith":
			errMsg += fmt.Sprintf("- Field '%s' must start with '%s'\n", field, fieldError.Param())
		default:
			errMsg += fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg)
}
