package mining

import (
	"math"

	"github.com/cinar/indicator"
)

// Traction is the short-term market tone shown by the network pulse.
type Traction string

const (
	TractionBullish  Traction = "bullish"
	TractionPositive Traction = "positive"
	TractionNeutral  Traction = "neutral"
)

// Network pulse constants.
const (
	PulseWindowDays      = 7
	BullishProfit        = 500.0
	ConfidenceDivisor    = 12.0
	MinConfidencePercent = 42
	MaxConfidencePercent = 95
)

// Pulse is the first-week reading of a projection.
type Pulse struct {
	WeeklyAverage     float64  `json:"weeklyAverage"`
	Traction          Traction `json:"traction"`
	ConfidencePercent int      `json:"confidencePercent"`
}

// ComputePulse averages the first PulseWindowDays of profit and derives the
// traction and bot confidence readings from it.
func ComputePulse(projection Projection) (Pulse, error) {
	if err := projection.Validate(); err != nil {
		return Pulse{}, err
	}
	sma := indicator.Sma(PulseWindowDays, projection.Profits())
	avg := sma[PulseWindowDays-1]

	traction := TractionNeutral
	switch {
	case avg > BullishProfit:
		traction = TractionBullish
	case avg > 0:
		traction = TractionPositive
	}

	confidence := int(math.Round(avg / ConfidenceDivisor))
	if confidence < MinConfidencePercent {
		confidence = MinConfidencePercent
	}
	if confidence > MaxConfidencePercent {
		confidence = MaxConfidencePercent
	}

	return Pulse{WeeklyAverage: avg, Traction: traction, ConfidencePercent: confidence}, nil
}

// Summary holds the chart-level aggregates of a projection.
type Summary struct {
	MaxProfit   float64   `json:"maxProfit"`
	MinProfit   float64   `json:"minProfit"`
	TotalProfit float64   `json:"totalProfit"`
	Trend       []float64 `json:"trend"`
}

// Summarize returns extremes, total and a PulseWindowDays moving average of
// daily profit.
func Summarize(projection Projection) (Summary, error) {
	if err := projection.Validate(); err != nil {
		return Summary{}, err
	}
	profits := projection.Profits()
	s := Summary{
		MaxProfit:   math.Inf(-1),
		MinProfit:   math.Inf(1),
		TotalProfit: projection.Total(),
		Trend:       indicator.Sma(PulseWindowDays, profits),
	}
	for _, v := range profits {
		s.MaxProfit = math.Max(s.MaxProfit, v)
		s.MinProfit = math.Min(s.MinProfit, v)
	}
	return s, nil
}
