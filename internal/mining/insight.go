package mining

import (
	"math"

	"github.com/shopspring/decimal"
)

// RiskLevel classifies how volatile a scenario is.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// EfficiencyLabel classifies how a scenario deploys its profit.
type EfficiencyLabel string

const (
	EfficiencyAggressive   EfficiencyLabel = "aggressive"
	EfficiencyBalanced     EfficiencyLabel = "balanced"
	EfficiencyConservative EfficiencyLabel = "conservative"
)

// Classification thresholds. Risk and efficiency rules are evaluated in the
// order documented on classifyRisk and classifyEfficiency, so every input maps
// to exactly one category.
const (
	HighRiskVolatility = 0.50
	HighRiskSpread     = 0.25
	LowRiskVolatility  = 0.30
	LowRiskSpread      = 0.10

	AggressiveReinvestment   = 0.60
	AggressiveEfficiency     = 400.0
	ConservativeReinvestment = 0.30

	// EfficiencyPrecision is the number of decimal places capitalEfficiency
	// is rounded to.
	EfficiencyPrecision = 1
)

// StrategyInsight holds the summary metrics and recommendations for one
// projection.
type StrategyInsight struct {
	CapitalEfficiency float64         `json:"capitalEfficiency"`
	BreakevenDays     int             `json:"breakevenDays"`
	RiskLevel         RiskLevel       `json:"riskLevel"`
	EfficiencyLabel   EfficiencyLabel `json:"efficiencyLabel"`
	SuggestedTuning   []string        `json:"suggestedTuning"`
}

// DeriveInsights computes efficiency, breakeven, risk and efficiency
// categories and tuning suggestions for a projection produced by
// ComputeProjection with the same parameters.
func DeriveInsights(params OperatingParameters, projection Projection) (StrategyInsight, error) {
	coin, err := GetCoinProfile(params.CoinID)
	if err != nil {
		return StrategyInsight{}, err
	}
	if err := projection.Validate(); err != nil {
		return StrategyInsight{}, err
	}
	p := params.Normalize()
	profits := projection.Profits()

	efficiency := CapitalEfficiency(p, projection)
	breakeven := BreakevenDay(projection)
	risk := classifyRisk(coin.Volatility, profitSpread(profits))
	label := classifyEfficiency(p.ReinvestmentRate, efficiency)

	return StrategyInsight{
		CapitalEfficiency: efficiency,
		BreakevenDays:     breakeven,
		RiskLevel:         risk,
		EfficiencyLabel:   label,
		SuggestedTuning: suggestTuning(tuningInput{
			params:     p,
			coin:       coin,
			efficiency: efficiency,
			breakeven:  breakeven,
			risk:       risk,
		}),
	}, nil
}

// CapitalEfficiency returns horizon net profit as a percentage of horizon
// energy spend, rounded to EfficiencyPrecision places. The result always
// carries the sign of the net profit: a loss too small to survive rounding
// reports the smallest representable negative step instead of zero.
func CapitalEfficiency(params OperatingParameters, projection Projection) float64 {
	energy := params.Normalize().DailyEnergyCost() * float64(len(projection))
	total := projection.Total()
	if energy <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return 0
	}
	ratio := decimal.NewFromFloat(total).
		Div(decimal.NewFromFloat(energy)).
		Mul(decimal.NewFromInt(100)).
		Round(EfficiencyPrecision)

	step := decimal.New(1, -EfficiencyPrecision)
	switch {
	case total < 0 && !ratio.IsNegative():
		ratio = step.Neg()
	case total > 0 && !ratio.IsPositive():
		ratio = step
	}
	return ratio.InexactFloat64()
}

// BreakevenDay returns the first day whose running total is non-negative, or
// Horizon when the projection never recovers.
func BreakevenDay(projection Projection) int {
	for i, total := range projection.Cumulative() {
		if total >= 0 {
			return projection[i].Day
		}
	}
	return Horizon
}

// classifyRisk: High when volatility or spread reach their high thresholds,
// Low when both sit under the low thresholds, Medium otherwise.
func classifyRisk(volatility, spread float64) RiskLevel {
	switch {
	case volatility >= HighRiskVolatility || spread >= HighRiskSpread:
		return RiskHigh
	case volatility < LowRiskVolatility && spread < LowRiskSpread:
		return RiskLow
	default:
		return RiskMedium
	}
}

// classifyEfficiency: Aggressive for heavy reinvestment at high efficiency,
// Conservative for light reinvestment with positive efficiency, Balanced
// otherwise.
func classifyEfficiency(reinvestment, efficiency float64) EfficiencyLabel {
	switch {
	case reinvestment >= AggressiveReinvestment && efficiency >= AggressiveEfficiency:
		return EfficiencyAggressive
	case reinvestment < ConservativeReinvestment && efficiency > 0:
		return EfficiencyConservative
	default:
		return EfficiencyBalanced
	}
}
