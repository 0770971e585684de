// Package config provides configuration management for the AstraMine service.
package config

import (
	"os"
	"strings"
	"testing"
)

const (
	validConfigPath              = "testdata/valid_config.yaml"
	expansionConfigPath          = "testdata/expansion_config.yaml"
	expansionConfigMissingPath   = "testdata/expansion_config_missing.yaml"
	nonexistentConfigPath        = "testdata/nonexistent_config.yaml"
	expectedNoErrorLoadingConfig = "expected no error loading config, got %v"
	expectedNoErrorMsg           = "expected no error, got %v"
	expectedNonNilConfig         = "expected non-nil config"
	astramineName                = "astramine"
	developmentEnv               = "development"
	invalidEnv                   = "invalid"
	localhostHost                = "localhost"
	serverPort                   = 8080
	testAppName                  = "test-app"
	testOrigin                   = "TEST_DASHBOARD_ORIGIN"
	testMissingVar               = "TEST_MISSING_VAR"
	expandedOriginValue          = "https://dashboard.example.org"
)

func loadValid(t *testing.T) *Config {
	t.Helper()
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}
	return cfg
}

// TestLoadConfigSuccess tests loading a valid configuration file
func TestLoadConfigSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg == nil {
		t.Fatal(expectedNonNilConfig)
	}

	if cfg.App.Name != astramineName {
		t.Errorf("expected app name '%s', got '%s'", astramineName, cfg.App.Name)
	}

	if cfg.App.Environment != developmentEnv {
		t.Errorf("expected environment '%s', got '%s'", developmentEnv, cfg.App.Environment)
	}

	if cfg.Server.Host != localhostHost {
		t.Errorf("expected server host '%s', got '%s'", localhostHost, cfg.Server.Host)
	}

	if cfg.Server.Port != serverPort {
		t.Errorf("expected server port %d, got %d", serverPort, cfg.Server.Port)
	}

	if cfg.Defaults.CoinID != "bitcoin" || cfg.Defaults.HashRate != 120 {
		t.Errorf("expected bitcoin defaults at 120 TH/s, got %+v", cfg.Defaults)
	}

	if cfg.Defaults.ReinvestmentRate != 0.48 {
		t.Errorf("expected reinvestment rate 0.48, got %v", cfg.Defaults.ReinvestmentRate)
	}
}

// TestLoadConfigFileNotFound tests handling of missing configuration file
func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := Load(nonexistentConfigPath)
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

// TestLoadConfigEnvironmentVariables tests environment variable override
func TestLoadConfigEnvironmentVariables(t *testing.T) {
	t.Setenv("ASTRAMINE_APP_NAME", testAppName)
	t.Setenv("ASTRAMINE_SERVER_STRICT_BOUNDS", "true")

	cfg := loadValid(t)

	if cfg.App.Name != testAppName {
		t.Errorf("expected app name '%s' from environment, got '%s'", testAppName, cfg.App.Name)
	}
	if !cfg.Server.StrictBounds {
		t.Error("expected strict_bounds to be enabled from environment")
	}
}

// TestLoadWithDefaultsMissingFile tests that defaults cover a missing file
func TestLoadWithDefaultsMissingFile(t *testing.T) {
	cfg, err := LoadWithDefaults(nonexistentConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.Server.Port != 8080 || cfg.Health.Port != 8081 || cfg.Metrics.Port != 9090 {
		t.Errorf("unexpected default ports: %d/%d/%d", cfg.Server.Port, cfg.Health.Port, cfg.Metrics.Port)
	}
	if cfg.Defaults.CoinID != "bitcoin" {
		t.Errorf("expected default coin bitcoin, got %q", cfg.Defaults.CoinID)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

// TestLoadWithDefaultsEnvOverride tests environment variables without a file
func TestLoadWithDefaultsEnvOverride(t *testing.T) {
	t.Setenv("ASTRAMINE_DEFAULTS_COIN_ID", "kaspa")
	t.Setenv("ASTRAMINE_HEALTH_PORT", "9191")

	cfg, err := LoadWithDefaults(nonexistentConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.Defaults.CoinID != "kaspa" {
		t.Errorf("expected coin kaspa from environment, got %q", cfg.Defaults.CoinID)
	}
	if cfg.Health.Port != 9191 {
		t.Errorf("expected health port 9191 from environment, got %d", cfg.Health.Port)
	}
}

// TestValidateSuccess tests validation of a valid configuration
func TestValidateSuccess(t *testing.T) {
	cfg := loadValid(t)

	if err := Validate(cfg); err != nil {
		t.Fatalf("expected no validation error, got %v", err)
	}
}

// TestValidateInvalidEnvironment tests validation of invalid environment
func TestValidateInvalidEnvironment(t *testing.T) {
	cfg := loadValid(t)

	cfg.App.Environment = invalidEnv
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for invalid environment")
	}
	if !strings.Contains(err.Error(), "development, staging, production") {
		t.Errorf("expected environment message, got: %v", err)
	}
}

// TestValidateInvalidLogLevel tests validation of an unsupported log level
func TestValidateInvalidLogLevel(t *testing.T) {
	cfg := loadValid(t)

	cfg.App.LogLevel = "trace"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for invalid log level")
	}
}

// TestValidateDefaults tests the operating parameter defaults section
func TestValidateDefaults(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		message string
	}{
		{"unknown coin", func(c *Config) { c.Defaults.CoinID = "dogecoin" }, "unknown coin 'dogecoin'"},
		{"hash rate too high", func(c *Config) { c.Defaults.HashRate = 400 }, "HashRate"},
		{"negative reinvestment", func(c *Config) { c.Defaults.ReinvestmentRate = -0.1 }, "ReinvestmentRate"},
		{"cheap power", func(c *Config) { c.Defaults.ElectricityCost = 0.001 }, "ElectricityCost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadValid(t)
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("expected error mentioning %q, got: %v", tt.message, err)
			}
		})
	}
}

// TestValidateCrossField tests rules spanning several sections
func TestValidateCrossField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"health collides with server", func(c *Config) { c.Health.Port = c.Server.Port }},
		{"metrics collides with health", func(c *Config) { c.Metrics.Port = c.Health.Port }},
		{"burst below rate", func(c *Config) { c.Server.RateLimitBurst = 5 }},
		{"production wildcard origin", func(c *Config) {
			c.App.Environment = "production"
			c.Server.AllowedOrigins = []string{"*"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadValid(t)
			tt.mutate(cfg)

			if err := Validate(cfg); err == nil {
				t.Fatal("expected cross-field validation error")
			}
		})
	}
}

// TestValidateDisabledMetricsPort tests that a disabled metrics listener may share a port
func TestValidateDisabledMetricsPort(t *testing.T) {
	cfg := loadValid(t)

	cfg.Metrics.Enabled = false
	cfg.Metrics.Port = cfg.Server.Port
	if err := Validate(cfg); err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
}

// TestDefaultParametersClamped tests that configured defaults are normalized
func TestDefaultParametersClamped(t *testing.T) {
	cfg := loadValid(t)
	cfg.Defaults.HashRate = 999

	p := cfg.DefaultParameters()
	if p.HashRate != 250 {
		t.Errorf("expected hash rate clamped to 250, got %v", p.HashRate)
	}
}

// TestIsDevelopment tests environment check function
func TestIsDevelopment(t *testing.T) {
	cfg := &Config{
		App: AppConfig{Environment: developmentEnv},
	}

	if !cfg.IsDevelopment() {
		t.Error("expected IsDevelopment() to return true")
	}

	if cfg.IsProduction() {
		t.Error("expected IsProduction() to return false")
	}
}

// TestIsProduction tests production environment check
func TestIsProduction(t *testing.T) {
	cfg := &Config{
		App: AppConfig{Environment: "production"},
	}

	if !cfg.IsProduction() {
		t.Error("expected IsProduction() to return true")
	}

	if cfg.IsStaging() {
		t.Error("expected IsStaging() to return false")
	}
}

// TestServerAddress tests listener address formatting
func TestServerAddress(t *testing.T) {
	cfg := &Config{
		Server:  ServerConfig{Host: localhostHost, Port: serverPort},
		Metrics: MetricsConfig{Port: 9090},
	}

	if got := cfg.ServerAddress(); got != "localhost:8080" {
		t.Errorf("expected 'localhost:8080', got '%s'", got)
	}
	if got := cfg.MetricsAddress(); got != ":9090" {
		t.Errorf("expected ':9090', got '%s'", got)
	}
}

// TestLoadConfigEnvironmentVariableExpansion tests environment variable expansion in config file
func TestLoadConfigEnvironmentVariableExpansion(t *testing.T) {
	t.Setenv(testOrigin, expandedOriginValue)

	cfg, err := Load(expansionConfigPath)
	if err != nil {
		t.Fatalf("expected no error loading config with expansion, got %v", err)
	}

	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != expandedOriginValue {
		t.Errorf("expected origin '%s' from environment expansion, got %v", expandedOriginValue, cfg.Server.AllowedOrigins)
	}
}

// TestLoadConfigMissingEnvironmentVariable tests handling of missing environment variables
func TestLoadConfigMissingEnvironmentVariable(t *testing.T) {
	os.Unsetenv(testMissingVar)

	cfg, err := Load(expansionConfigMissingPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	// os.ExpandEnv replaces unset variables with the empty string.
	if len(cfg.Server.AllowedOrigins) == 1 && cfg.Server.AllowedOrigins[0] != "" {
		t.Errorf("expected empty origin for unset variable, got %q", cfg.Server.AllowedOrigins[0])
	}
}
