// Package metrics provides centralized Prometheus metrics registry for the projection service.
package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "astramine"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "http_requests_total",
		Help:      "Total number of API requests by route and status code",
	}, []string{"route", "status"})
	RateLimitedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter",
	})
)

// Gauge metrics
var (
	StreamSessionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "stream_sessions_active",
		Help:      "Number of open dashboard streaming sessions",
	})
)

// Histogram metrics
var (
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of API requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register transport metrics
		registry.MustRegister(HTTPRequestsTotal)
		registry.MustRegister(RateLimitedTotal)
		registry.MustRegister(StreamSessionsActive)
		registry.MustRegister(HTTPRequestDuration)

		// Register engine metrics
		registry.MustRegister(ProjectionsTotal)
		registry.MustRegister(InsightsTotal)
		registry.MustRegister(EngineErrorsTotal)
		registry.MustRegister(EvaluationDuration)
		registry.MustRegister(BreakevenDays)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordHTTPRequest records a served API request.
func RecordHTTPRequest(route string, status int, durationSeconds float64) {
	HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(route).Observe(durationSeconds)
}

// RecordRateLimited records a request rejected by the limiter.
func RecordRateLimited() {
	RateLimitedTotal.Inc()
}

// StreamSessionOpened increments the open session gauge.
func StreamSessionOpened() {
	StreamSessionsActive.Inc()
}

// StreamSessionClosed decrements the open session gauge.
func StreamSessionClosed() {
	StreamSessionsActive.Dec()
}
