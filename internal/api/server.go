// Package api exposes the projection engine over HTTP and a WebSocket
// dashboard stream.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/astramine/internal/config"
	"github.com/yourusername/astramine/internal/logger"
	"github.com/yourusername/astramine/internal/service"
)

// maxBodyBytes caps request bodies; an insights request carries 21 points.
const maxBodyBytes = 64 << 10

// Server serves the dashboard API.
type Server struct {
	cfg        config.ServerConfig
	advisor    *service.Advisor
	logger     *logrus.Logger
	audit      *logger.AuditLogger
	limiter    *clientLimiter
	upgrader   websocket.Upgrader
	httpServer *http.Server
}

// NewServer creates a new API server.
func NewServer(cfg config.ServerConfig, advisor *service.Advisor, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}

	s := &Server{
		cfg:     cfg,
		advisor: advisor,
		logger:  log,
		audit:   logger.NewAuditLogger(log),
		limiter: newClientLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst, time.Duration(cfg.ClientIdleMinutes)*time.Minute),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 16384,
		CheckOrigin:     func(r *http.Request) bool { return s.originAllowed(r.Header.Get("Origin")) },
	}
	return s
}

// Handler returns the routed API wrapped in middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/coins", s.handleListCoins)
	mux.HandleFunc("GET /api/coins/{id}", s.handleGetCoin)
	mux.HandleFunc("GET /api/parameters/defaults", s.handleDefaults)
	mux.HandleFunc("POST /api/projection", s.handleProjection)
	mux.HandleFunc("POST /api/insights", s.handleInsights)
	mux.HandleFunc("POST /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /ws/dashboard", s.handleStream)

	return s.withRequestID(s.withCORS(s.withRateLimit(s.withLogging(mux))))
}

// Listen binds the API address so callers can report readiness before
// serving starts.
func (s *Server) Listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("api listen: %w", err)
	}
	return ln, nil
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	addr := ln.Addr().String()
	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.audit.LogServerLifecycle("api", addr, "started")
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("api server: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.audit.LogServerLifecycle("api", addr, "stopping")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api shutdown: %w", err)
	}
	return <-errCh
}

func (s *Server) originAllowed(origin string) bool {
	if origin == "" {
		return true
	}
	for _, allowed := range s.cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
