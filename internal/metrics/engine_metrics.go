// Package metrics defines projection engine metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Engine counters
var (
	ProjectionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "projections_total",
		Help:      "Total number of projections generated",
	})

	InsightsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "insights_total",
		Help:      "Total number of insights derived by risk level and efficiency label",
	}, []string{"risk_level", "efficiency_label"})

	EngineErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "engine_errors_total",
		Help:      "Total number of rejected engine requests by kind",
	}, []string{"kind"})
)

// Evaluation operations timed by EvaluationDuration.
const (
	OperationDashboard = "dashboard"
	OperationInsights  = "insights"
)

// Engine histograms
var (
	EvaluationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "evaluation_duration_seconds",
		Help:      "Duration of engine evaluation in seconds; dashboard covers projection plus insight, insights covers insight derivation only",
		Buckets:   []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01},
	}, []string{"operation"})

	BreakevenDays = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "breakeven_days",
		Help:      "Day on which cumulative profit first turns positive",
		Buckets:   []float64{1, 2, 3, 5, 7, 10, 14, 21},
	})
)

// RecordProjection records a generated projection.
func RecordProjection() {
	ProjectionsTotal.Inc()
}

// RecordInsight records a derived insight, its breakeven day and how long
// the operation that produced it took.
func RecordInsight(operation, riskLevel, efficiencyLabel string, breakevenDays int, durationSeconds float64) {
	InsightsTotal.WithLabelValues(riskLevel, efficiencyLabel).Inc()
	BreakevenDays.Observe(float64(breakevenDays))
	EvaluationDuration.WithLabelValues(operation).Observe(durationSeconds)
}

// RecordEngineError records a rejected request.
func RecordEngineError(kind string) {
	EngineErrorsTotal.WithLabelValues(kind).Inc()
}
