// Package logger provides projection-specific structured logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// ProjectionLogger logs engine evaluations.
type ProjectionLogger struct {
	*logrus.Entry
}

// NewProjectionLogger creates a new projection logger.
func NewProjectionLogger(baseLogger *logrus.Logger) *ProjectionLogger {
	return &ProjectionLogger{
		Entry: baseLogger.WithField("component", "projection"),
	}
}

// LogEvaluation logs a completed projection and insight derivation.
func (pl *ProjectionLogger) LogEvaluation(requestID, coinID string, totalProfit, capitalEfficiency float64, breakevenDays int, riskLevel, efficiencyLabel string, duration time.Duration) {
	pl.WithFields(logrus.Fields{
		"request_id":         requestID,
		"coin_id":            coinID,
		"total_profit":       totalProfit,
		"capital_efficiency": capitalEfficiency,
		"breakeven_days":     breakevenDays,
		"risk_level":         riskLevel,
		"efficiency_label":   efficiencyLabel,
		"duration_ms":        duration.Milliseconds(),
	}).Info("Projection evaluated")
}

// LogClamped logs parameters that were pulled back into their domains.
func (pl *ProjectionLogger) LogClamped(requestID string, fields []string) {
	pl.WithFields(logrus.Fields{
		"request_id": requestID,
		"fields":     fields,
	}).Debug("Parameters clamped into domain")
}

// LogRejected logs a request the engine refused.
func (pl *ProjectionLogger) LogRejected(requestID, kind string, err error) {
	pl.WithFields(logrus.Fields{
		"request_id": requestID,
		"kind":       kind,
	}).WithError(err).Warn("Projection rejected")
}
