package mining

import (
	"fmt"
	"math"
)

// Horizon is the number of days covered by a projection.
const Horizon = 21

// Projection model constants. Changing any of them changes every projection,
// so they are part of the engine's stable contract.
const (
	// OscillationAmplitude scales coin volatility into the peak relative swing
	// of daily gross revenue.
	OscillationAmplitude = 0.35
	// OscillationPeriodDays is the length of one simulated price/difficulty cycle.
	OscillationPeriodDays = 7
	// OscillationDamping is the exponential decay rate of the swing per day.
	OscillationDamping = 0.03
	// CompoundingYield is the daily return earned on reinvested capital.
	CompoundingYield = 0.012
)

// ProjectionPoint is the estimated net profit for one day of the horizon.
type ProjectionPoint struct {
	Day    int     `json:"day"`
	Profit float64 `json:"profit"`
}

// Projection is an ordered run of daily points, day 1 first.
type Projection []ProjectionPoint

// Profits returns the profit column.
func (p Projection) Profits() []float64 {
	out := make([]float64, len(p))
	for i, pt := range p {
		out[i] = pt.Profit
	}
	return out
}

// Cumulative returns the running profit total for each day.
func (p Projection) Cumulative() []float64 {
	out := make([]float64, len(p))
	running := 0.0
	for i, pt := range p {
		running += pt.Profit
		out[i] = running
	}
	return out
}

// Total returns the sum of daily profits.
func (p Projection) Total() float64 {
	total := 0.0
	for _, pt := range p {
		total += pt.Profit
	}
	return total
}

// Validate checks that p is a full horizon with contiguous days 1..Horizon
// and that every profit and every running total is finite.
func (p Projection) Validate() error {
	if len(p) != Horizon {
		return fmt.Errorf("%w: expected %d points, got %d", ErrInvalidProjection, Horizon, len(p))
	}
	for i, pt := range p {
		if pt.Day != i+1 {
			return fmt.Errorf("%w: point %d has day %d, expected %d", ErrInvalidProjection, i, pt.Day, i+1)
		}
		if math.IsNaN(pt.Profit) || math.IsInf(pt.Profit, 0) {
			return fmt.Errorf("%w: day %d profit is not finite", ErrInvalidProjection, pt.Day)
		}
	}
	for i, total := range p.Cumulative() {
		if math.IsInf(total, 0) {
			return fmt.Errorf("%w: running total overflows on day %d", ErrInvalidProjection, p[i].Day)
		}
	}
	return nil
}

// BaselineRevenue returns the un-oscillated daily gross revenue in USD for the
// normalised parameters.
func BaselineRevenue(params OperatingParameters) (float64, error) {
	coin, err := GetCoinProfile(params.CoinID)
	if err != nil {
		return 0, err
	}
	p := params.Normalize()
	return p.HashRate * coin.DailyValuePerTH(), nil
}

// Oscillation returns the multiplicative revenue drift for day d. It is a
// damped weekly cosine that starts the horizon at the bottom of the cycle and
// stays within 1 +/- OscillationAmplitude*volatility.
func Oscillation(volatility float64, day int) float64 {
	elapsed := float64(day - 1)
	phase := 2 * math.Pi * elapsed / OscillationPeriodDays
	damping := math.Exp(-OscillationDamping * elapsed)
	return 1 - OscillationAmplitude*volatility*math.Cos(phase)*damping
}

// ComputeProjection projects daily net profit over the horizon.
//
// Day d earns baseline revenue scaled by Oscillation, pays the constant daily
// energy bill and adds a compounding term on the reinvested share of the
// profit accumulated before d. A negative running total contributes nothing.
func ComputeProjection(params OperatingParameters) (Projection, error) {
	coin, err := GetCoinProfile(params.CoinID)
	if err != nil {
		return nil, err
	}
	p := params.Normalize()

	baseline := p.HashRate * coin.DailyValuePerTH()
	energy := p.DailyEnergyCost()

	projection := make(Projection, 0, Horizon)
	cumulative := 0.0
	for day := 1; day <= Horizon; day++ {
		gross := baseline * Oscillation(coin.Volatility, day)
		profit := gross - energy
		if p.ReinvestmentRate > 0 {
			profit += p.ReinvestmentRate * math.Max(0, cumulative) * CompoundingYield
		}
		projection = append(projection, ProjectionPoint{Day: day, Profit: profit})
		cumulative += profit
	}
	return projection, nil
}
