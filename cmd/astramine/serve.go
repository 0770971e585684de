package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/astramine/internal/api"
	"github.com/yourusername/astramine/internal/health"
	"github.com/yourusername/astramine/internal/logger"
	"github.com/yourusername/astramine/internal/metrics"
	"github.com/yourusername/astramine/internal/mining"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard API, health and metrics servers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"version":     Version,
		"strict":      cfg.Server.StrictBounds,
	}).Info("AstraMine starting")

	audit := logger.NewAuditLogger(appLog)
	advisor := newAdvisor()
	apiServer := api.NewServer(cfg.Server, advisor, appLog)

	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Port:        cfg.Health.Port,
		Logger:      appLog,
		Checks: []health.Checker{
			health.CheckFunc{CheckName: "catalog", Fn: catalogCheck},
			advisor,
		},
	})

	g, gCtx := errgroup.WithContext(ctx)

	if err := healthServer.Start(gCtx); err != nil {
		return fmt.Errorf("failed to start health server: %w", err)
	}

	ln, err := apiServer.Listen(cfg.ServerAddress())
	if err != nil {
		return err
	}

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		g.Go(func() error {
			return serveMetrics(gCtx, audit)
		})
	}

	g.Go(func() error {
		return apiServer.Serve(gCtx, ln)
	})

	healthServer.SetReady(true)
	appLog.WithField("addr", ln.Addr().String()).Info("Dashboard API ready")

	err = g.Wait()
	healthServer.SetReady(false)
	appLog.Info("AstraMine stopped")
	return err
}

// catalogCheck fails readiness when the coin catalog is empty.
func catalogCheck(context.Context) error {
	if len(mining.ListCoins()) == 0 {
		return errors.New("coin catalog is empty")
	}
	return nil
}

func serveMetrics(ctx context.Context, audit *logger.AuditLogger) error {
	mux := http.NewServeMux()
	mux.Handle("GET "+cfg.Metrics.Path, metrics.Handler())
	srv := &http.Server{
		Addr:              cfg.MetricsAddress(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	audit.LogServerLifecycle("metrics", srv.Addr, "started")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	audit.LogServerLifecycle("metrics", srv.Addr, "stopped")
	return nil
}
