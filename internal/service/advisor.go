// Package service wires the projection engine to logging, metrics and
// parameter validation for the API and CLI surfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/astramine/internal/logger"
	"github.com/yourusername/astramine/internal/metrics"
	"github.com/yourusername/astramine/internal/mining"
)

// Error kinds reported to metrics and logs.
const (
	KindUnknownCoin       = "unknown_coin"
	KindInvalidProjection = "invalid_projection"
	KindOutOfDomain       = "out_of_domain"
	KindCanceled          = "canceled"
	KindInternal          = "internal"
)

// Advisor evaluates operating parameters on behalf of a caller.
type Advisor struct {
	validator        *validator.Validate
	defaults         mining.OperatingParameters
	strict           bool
	logger           *logrus.Logger
	projectionLogger *logger.ProjectionLogger
}

// AdvisorConfig holds the dependencies of an Advisor.
type AdvisorConfig struct {
	// Defaults seeds the dashboard. Zero value means mining.DefaultParameters.
	Defaults mining.OperatingParameters
	// StrictBounds rejects out-of-domain parameters instead of clamping.
	StrictBounds bool
	Logger       *logrus.Logger
}

// ParameterDefaults is the payload behind the defaults endpoint.
type ParameterDefaults struct {
	Defaults    mining.OperatingParameters `json:"defaults"`
	Recommended mining.OperatingParameters `json:"recommended"`
	Domains     []mining.Domain            `json:"domains"`
	Horizon     int                        `json:"horizon"`
}

// ProjectionResult pairs a projection with the parameters that produced it.
type ProjectionResult struct {
	Parameters mining.OperatingParameters `json:"parameters"`
	Projection mining.Projection          `json:"projection"`
}

// NewAdvisor creates a new advisor.
func NewAdvisor(cfg AdvisorConfig) *Advisor {
	defaults := cfg.Defaults
	if defaults == (mining.OperatingParameters{}) {
		defaults = mining.DefaultParameters()
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Advisor{
		validator:        mining.NewValidator(),
		defaults:         defaults.Normalize(),
		strict:           cfg.StrictBounds,
		logger:           log,
		projectionLogger: logger.NewProjectionLogger(log),
	}
}

// Coins lists the catalog in display order.
func (a *Advisor) Coins() []mining.CoinProfile {
	return mining.ListCoins()
}

// Coin looks up one catalog entry.
func (a *Advisor) Coin(id string) (mining.CoinProfile, error) {
	coin, err := mining.GetCoinProfile(id)
	if err != nil {
		metrics.RecordEngineError(KindUnknownCoin)
	}
	return coin, err
}

// Defaults returns the starting scenario, reference profile and slider domains.
func (a *Advisor) Defaults() ParameterDefaults {
	return ParameterDefaults{
		Defaults:    a.defaults,
		Recommended: mining.RecommendedParameters(),
		Domains:     mining.Domains(),
		Horizon:     mining.Horizon,
	}
}

// Project generates the 21-day projection for params.
func (a *Advisor) Project(ctx context.Context, requestID string, params mining.OperatingParameters) (*ProjectionResult, error) {
	p, err := a.prepare(ctx, requestID, params)
	if err != nil {
		return nil, err
	}

	projection, err := mining.ComputeProjection(p)
	if err != nil {
		return nil, a.reject(requestID, err)
	}
	metrics.RecordProjection()

	return &ProjectionResult{Parameters: p, Projection: projection}, nil
}

// Insights derives the strategy insight for a projection the caller already holds.
func (a *Advisor) Insights(ctx context.Context, requestID string, params mining.OperatingParameters, projection mining.Projection) (*mining.StrategyInsight, error) {
	start := time.Now()
	p, err := a.prepare(ctx, requestID, params)
	if err != nil {
		return nil, err
	}

	insight, err := mining.DeriveInsights(p, projection)
	if err != nil {
		return nil, a.reject(requestID, err)
	}
	a.observe(requestID, metrics.OperationInsights, p, projection.Total(), insight, time.Since(start))

	return &insight, nil
}

// Dashboard runs the full pipeline for params.
func (a *Advisor) Dashboard(ctx context.Context, requestID string, params mining.OperatingParameters) (*mining.Dashboard, error) {
	start := time.Now()
	p, err := a.prepare(ctx, requestID, params)
	if err != nil {
		return nil, err
	}

	dashboard, err := mining.Evaluate(p)
	if err != nil {
		return nil, a.reject(requestID, err)
	}
	metrics.RecordProjection()
	a.observe(requestID, metrics.OperationDashboard, p, dashboard.Summary.TotalProfit, dashboard.Insight, time.Since(start))

	return &dashboard, nil
}

// Name identifies the advisor in readiness checks.
func (a *Advisor) Name() string {
	return "engine"
}

// Check evaluates the configured defaults end to end.
func (a *Advisor) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := mining.Evaluate(a.defaults); err != nil {
		return fmt.Errorf("evaluate defaults: %w", err)
	}
	return nil
}

// prepare applies the bounds policy and returns the normalized parameters.
func (a *Advisor) prepare(ctx context.Context, requestID string, params mining.OperatingParameters) (mining.OperatingParameters, error) {
	if err := ctx.Err(); err != nil {
		return mining.OperatingParameters{}, a.reject(requestID, err)
	}
	if a.strict {
		if err := mining.ValidateStrict(a.validator, params); err != nil {
			return mining.OperatingParameters{}, a.reject(requestID, err)
		}
		return params, nil
	}
	if !params.InDomain() {
		a.projectionLogger.LogClamped(requestID, params.OutOfDomain())
	}
	return params.Normalize(), nil
}

func (a *Advisor) observe(requestID, operation string, p mining.OperatingParameters, total float64, insight mining.StrategyInsight, elapsed time.Duration) {
	metrics.RecordInsight(operation, string(insight.RiskLevel), string(insight.EfficiencyLabel), insight.BreakevenDays, elapsed.Seconds())
	a.projectionLogger.LogEvaluation(requestID, p.CoinID, total, insight.CapitalEfficiency,
		insight.BreakevenDays, string(insight.RiskLevel), string(insight.EfficiencyLabel), elapsed)
}

func (a *Advisor) reject(requestID string, err error) error {
	kind := ErrorKind(err)
	metrics.RecordEngineError(kind)
	a.projectionLogger.LogRejected(requestID, kind, err)
	return err
}

// ErrorKind classifies an advisor error for metrics and status mapping.
func ErrorKind(err error) string {
	var domainErr *mining.DomainError
	switch {
	case errors.Is(err, mining.ErrUnknownCoin):
		return KindUnknownCoin
	case errors.Is(err, mining.ErrInvalidProjection):
		return KindInvalidProjection
	case errors.As(err, &domainErr):
		return KindOutOfDomain
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindInternal
	}
}
