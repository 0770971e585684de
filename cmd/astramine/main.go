// Package main provides the astramine command line: the dashboard API server
// and one-shot projection tools.
package main

import (
	"fmt"
	"log"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/astramine/internal/config"
	"github.com/yourusername/astramine/internal/logger"
	"github.com/yourusername/astramine/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	logLevel   string
	appLog     *logrus.Logger
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "astramine",
	Short: "Mining profit projection and insight engine",
	Long: `astramine projects 21 days of mining profit for a rig configuration and
derives capital efficiency, breakeven, risk and tuning suggestions from it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultConfigPath, "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")

	rootCmd.AddCommand(serveCmd, projectCmd, coinsCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.App.LogLevel = logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	return nil
}

func newAdvisor() *service.Advisor {
	return service.NewAdvisor(service.AdvisorConfig{
		Defaults:     cfg.DefaultParameters(),
		StrictBounds: cfg.Server.StrictBounds,
		Logger:       appLog,
	})
}
