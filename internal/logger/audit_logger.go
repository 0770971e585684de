// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogParameterChange logs a slider movement within a dashboard session.
func (al *AuditLogger) LogParameterChange(sessionID, parameterName string, oldValue, newValue interface{}) {
	al.WithFields(logrus.Fields{
		"session_id":     sessionID,
		"parameter_name": parameterName,
		"old_value":      oldValue,
		"new_value":      newValue,
	}).Info("Operating parameter changed")
}

// LogSessionOpened logs a new streaming dashboard session.
func (al *AuditLogger) LogSessionOpened(sessionID, remoteAddr, origin string) {
	al.WithFields(logrus.Fields{
		"session_id":  sessionID,
		"remote_addr": remoteAddr,
		"origin":      origin,
	}).Info("Dashboard session opened")
}

// LogSessionClosed logs the end of a streaming dashboard session.
func (al *AuditLogger) LogSessionClosed(sessionID string, frames int, duration time.Duration, reason string) {
	al.WithFields(logrus.Fields{
		"session_id":  sessionID,
		"frames":      frames,
		"duration_ms": duration.Milliseconds(),
		"reason":      reason,
	}).Info("Dashboard session closed")
}

// LogServerLifecycle logs listener start and stop events.
func (al *AuditLogger) LogServerLifecycle(listener, addr, state string) {
	al.WithFields(logrus.Fields{
		"listener": listener,
		"addr":     addr,
		"state":    state,
	}).Info("Server lifecycle event")
}
