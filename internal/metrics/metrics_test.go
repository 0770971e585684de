package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
	assert.Same(t, registry, InitRegistry())
}

func TestRecordProjection(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(ProjectionsTotal)

	assert.NotPanics(t, func() {
		RecordProjection()
	})
	assert.Equal(t, before+1, testutil.ToFloat64(ProjectionsTotal))
}

func TestRecordInsight(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name      string
		operation string
		risk      string
		label     string
		day       int
	}{
		{name: "low balanced", operation: OperationDashboard, risk: "low", label: "balanced", day: 1},
		{name: "high aggressive", operation: OperationInsights, risk: "high", label: "aggressive", day: 9},
		{name: "never breaks even", operation: OperationDashboard, risk: "medium", label: "conservative", day: 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := InsightsTotal.WithLabelValues(tt.risk, tt.label)
			before := testutil.ToFloat64(counter)

			RecordInsight(tt.operation, tt.risk, tt.label, tt.day, 0.0002)
			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}

	assert.Equal(t, 2, testutil.CollectAndCount(EvaluationDuration),
		"dashboard and insights are timed as separate series")
}

func TestRecordEngineError(t *testing.T) {
	InitRegistry()
	counter := EngineErrorsTotal.WithLabelValues("unknown_coin")
	before := testutil.ToFloat64(counter)

	RecordEngineError("unknown_coin")
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestStreamSessionGauge(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(StreamSessionsActive)

	StreamSessionOpened()
	StreamSessionOpened()
	StreamSessionClosed()
	assert.Equal(t, before+1, testutil.ToFloat64(StreamSessionsActive))
	StreamSessionClosed()
}

func TestRecordHTTPRequest(t *testing.T) {
	InitRegistry()
	counter := HTTPRequestsTotal.WithLabelValues("GET /api/coins", "200")
	before := testutil.ToFloat64(counter)

	assert.NotPanics(t, func() {
		RecordHTTPRequest("GET /api/coins", http.StatusOK, 0.001)
		RecordRateLimited()
	})
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestHandlerExposesNamespace(t *testing.T) {
	InitRegistry()
	RecordProjection()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "astramine_projections_total")
}
