package mining

// Dashboard bundles every engine output for one parameter record.
type Dashboard struct {
	Parameters OperatingParameters `json:"parameters"`
	Coin       CoinProfile         `json:"coin"`
	Projection Projection          `json:"projection"`
	Insight    StrategyInsight     `json:"insight"`
	Pulse      Pulse               `json:"pulse"`
	Summary    Summary             `json:"summary"`
}

// Evaluate runs the full pipeline: projection, insights, pulse and summary.
// Parameters are normalised once and the normalised record is returned.
func Evaluate(params OperatingParameters) (Dashboard, error) {
	coin, err := GetCoinProfile(params.CoinID)
	if err != nil {
		return Dashboard{}, err
	}
	p := params.Normalize()

	projection, err := ComputeProjection(p)
	if err != nil {
		return Dashboard{}, err
	}
	insight, err := DeriveInsights(p, projection)
	if err != nil {
		return Dashboard{}, err
	}
	pulse, err := ComputePulse(projection)
	if err != nil {
		return Dashboard{}, err
	}
	summary, err := Summarize(projection)
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		Parameters: p,
		Coin:       coin,
		Projection: projection,
		Insight:    insight,
		Pulse:      pulse,
		Summary:    summary,
	}, nil
}
