package mining

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

const (
	maxSuggestions = 4
	minSuggestions = 2
	// tuningThreshold is the minimum distance from the reference value, as a
	// fraction of the domain width, before a parameter rule fires.
	tuningThreshold = 0.05
	// lateBreakevenDay is the last breakeven day that does not warrant a note.
	lateBreakevenDay = 7
)

// Reinvestment targets per risk level.
var reinvestmentTargets = map[RiskLevel]float64{
	RiskLow:    0.60,
	RiskMedium: 0.42,
	RiskHigh:   0.25,
}

// ReinvestmentTarget returns the reinvestment rate suggestions steer towards
// for the given risk level.
func ReinvestmentTarget(risk RiskLevel) float64 {
	if t, ok := reinvestmentTargets[risk]; ok {
		return t
	}
	return RecommendedParameters().ReinvestmentRate
}

type tuningInput struct {
	params     OperatingParameters
	coin       CoinProfile
	efficiency float64
	breakeven  int
	risk       RiskLevel
}

type parameterRule struct {
	field    string
	order    int
	distance float64
	message  string
}

func suggestTuning(in tuningInput) []string {
	var out []string
	p := in.params

	reinvestmentCovered := false
	if in.efficiency < 0 {
		out = append(out, fmt.Sprintf(
			"The %d-day horizon is loss-making (%.1f%% capital efficiency): pause the least efficient rigs until revenue covers the $%.2f daily power bill.",
			Horizon, in.efficiency, p.DailyEnergyCost()))
	}
	if in.risk == RiskHigh && p.ReinvestmentRate > AggressiveReinvestment {
		target := ReinvestmentTarget(RiskHigh)
		out = append(out, fmt.Sprintf(
			"Risk is high: cut reinvestment from %s to about %s and hold the difference as a liquidity buffer.",
			percent(p.ReinvestmentRate), percent(target)))
		reinvestmentCovered = true
	}

	for _, rule := range parameterRules(in) {
		if rule.field == FieldReinvestmentRate && reinvestmentCovered {
			continue
		}
		out = append(out, rule.message)
	}

	if in.breakeven > lateBreakevenDay {
		out = append(out, fmt.Sprintf(
			"Breakeven lands on day %d: front-load cheaper power or higher-yield hardware so cumulative profit turns positive within the first week.",
			in.breakeven))
	}

	fallbacks := []string{
		fmt.Sprintf("Re-run the projection whenever %s moves away from the $%s reference price or network difficulty adjusts.",
			in.coin.Name, decimal.NewFromFloat(in.coin.Price).StringFixed(2)),
		fmt.Sprintf("%s volatility is %s: daily revenue can swing by up to %s, so review the curve weekly.",
			in.coin.Name, percent(in.coin.Volatility), percent(OscillationAmplitude*in.coin.Volatility)),
	}
	for i := 0; len(out) < minSuggestions && i < len(fallbacks); i++ {
		out = append(out, fallbacks[i])
	}

	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// parameterRules returns the firing per-parameter rules, furthest from the
// reference profile first.
func parameterRules(in tuningInput) []parameterRule {
	p := in.params
	ref := RecommendedParameters()
	refEfficiency := ref.HashEfficiency()
	underutilized := p.HashEfficiency() < refEfficiency

	var rules []parameterRule

	if d := math.Abs(p.HashRate-ref.HashRate) / hashRateDomain.Width(); underutilized && d >= tuningThreshold {
		target := hashRateDomain.Clamp(p.PowerConsumption * refEfficiency)
		rules = append(rules, parameterRule{
			field:    FieldHashRate,
			order:    0,
			distance: d,
			message: fmt.Sprintf(
				"Hash rate is underutilized for the %.1f kW power budget: scale toward %.0f TH/s (%.1f TH/s per kW today vs %.1f recommended).",
				p.PowerConsumption, target, p.HashEfficiency(), refEfficiency),
		})
	}

	if d := math.Abs(p.PowerConsumption-ref.PowerConsumption) / powerConsumptionDomain.Width(); underutilized && p.PowerConsumption > ref.PowerConsumption && d >= tuningThreshold {
		target := powerConsumptionDomain.Clamp(p.HashRate / refEfficiency)
		rules = append(rules, parameterRule{
			field:    FieldPowerConsumption,
			order:    1,
			distance: d,
			message: fmt.Sprintf(
				"Power draw of %.1f kW outpaces the fleet: trim toward %.1f kW, which %.0f TH/s needs at the recommended efficiency, or add hash rate.",
				p.PowerConsumption, target, p.HashRate),
		})
	}

	if d := math.Abs(p.ElectricityCost-ref.ElectricityCost) / electricityCostDomain.Width(); p.ElectricityCost > ref.ElectricityCost && d >= tuningThreshold {
		share := 0.0
		if gross := p.HashRate * in.coin.DailyValuePerTH(); gross > 0 {
			share = p.DailyEnergyCost() / gross
		}
		rules = append(rules, parameterRule{
			field:    FieldElectricityCost,
			order:    2,
			distance: d,
			message: fmt.Sprintf(
				"Electricity at $%.2f/kWh consumes %s of gross revenue and erodes margin: negotiate toward $%.2f/kWh or shift load to off-peak hours.",
				p.ElectricityCost, percent(share), ref.ElectricityCost),
		})
	}

	target := ReinvestmentTarget(in.risk)
	if d := math.Abs(p.ReinvestmentRate - target); d >= tuningThreshold {
		direction := "raise it to compound more of the daily profit"
		relation := "below"
		if p.ReinvestmentRate > target {
			direction = "lower it to keep more profit liquid"
			relation = "above"
		}
		rules = append(rules, parameterRule{
			field:    FieldReinvestmentRate,
			order:    3,
			distance: d,
			message: fmt.Sprintf("Reinvestment at %s is %s the %s suited to %s risk: %s.",
				percent(p.ReinvestmentRate), relation, percent(target), in.risk, direction),
		})
	}

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].distance != rules[j].distance {
			return rules[i].distance > rules[j].distance
		}
		return rules[i].order < rules[j].order
	})
	return rules
}

func percent(fraction float64) string {
	return fmt.Sprintf("%.0f%%", math.Round(fraction*100))
}
