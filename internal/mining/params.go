package mining

import "math"

// OperatingParameters is the parameter record the dashboard evaluates. The
// validate tags mirror the slider domains and are enforced only by callers
// that opt into strict validation; the engine itself clamps.
type OperatingParameters struct {
	HashRate         float64 `json:"hashRate" mapstructure:"hash_rate" validate:"gte=10,lte=250"`
	PowerConsumption float64 `json:"powerConsumption" mapstructure:"power_consumption" validate:"gte=0.7,lte=6"`
	ElectricityCost  float64 `json:"electricityCost" mapstructure:"electricity_cost" validate:"gte=0.02,lte=0.3"`
	ReinvestmentRate float64 `json:"reinvestmentRate" mapstructure:"reinvestment_rate" validate:"gte=0,lte=1"`
	CoinID           string  `json:"coinId" mapstructure:"coin_id" validate:"required,coin"`
}

// Field names used by Domain and by tuning rules.
const (
	FieldHashRate         = "hashRate"
	FieldPowerConsumption = "powerConsumption"
	FieldElectricityCost  = "electricityCost"
	FieldReinvestmentRate = "reinvestmentRate"
)

// Domain describes the accepted range of one numeric parameter.
type Domain struct {
	Field string  `json:"field"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Step  float64 `json:"step"`
	Unit  string  `json:"unit"`
}

// Width returns Max-Min.
func (d Domain) Width() float64 {
	return d.Max - d.Min
}

// Clamp maps v into [Min, Max]. NaN and -Inf map to Min, +Inf to Max.
func (d Domain) Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < d.Min:
		return d.Min
	case v > d.Max:
		return d.Max
	}
	return v
}

// Contains reports whether v lies inside the domain.
func (d Domain) Contains(v float64) bool {
	return !math.IsNaN(v) && v >= d.Min && v <= d.Max
}

var (
	hashRateDomain         = Domain{Field: FieldHashRate, Min: 10, Max: 250, Step: 5, Unit: "TH/s"}
	powerConsumptionDomain = Domain{Field: FieldPowerConsumption, Min: 0.7, Max: 6, Step: 0.1, Unit: "kW"}
	electricityCostDomain  = Domain{Field: FieldElectricityCost, Min: 0.02, Max: 0.30, Step: 0.01, Unit: "$/kWh"}
	reinvestmentRateDomain = Domain{Field: FieldReinvestmentRate, Min: 0, Max: 1, Step: 0.05, Unit: "%"}
)

// Domains returns the numeric parameter domains in slider order.
func Domains() []Domain {
	return []Domain{hashRateDomain, powerConsumptionDomain, electricityCostDomain, reinvestmentRateDomain}
}

// DefaultParameters is the record the dashboard opens with.
func DefaultParameters() OperatingParameters {
	return OperatingParameters{
		HashRate:         120,
		PowerConsumption: 3.4,
		ElectricityCost:  0.09,
		ReinvestmentRate: 0.48,
		CoinID:           "bitcoin",
	}
}

// RecommendedParameters is the reference profile tuning suggestions steer
// towards.
func RecommendedParameters() OperatingParameters {
	return OperatingParameters{
		HashRate:         110,
		PowerConsumption: 3.1,
		ElectricityCost:  0.08,
		ReinvestmentRate: 0.42,
		CoinID:           "bitcoin",
	}
}

// Normalize returns a copy with every numeric field clamped to its domain.
// CoinID is left untouched.
func (p OperatingParameters) Normalize() OperatingParameters {
	p.HashRate = hashRateDomain.Clamp(p.HashRate)
	p.PowerConsumption = powerConsumptionDomain.Clamp(p.PowerConsumption)
	p.ElectricityCost = electricityCostDomain.Clamp(p.ElectricityCost)
	p.ReinvestmentRate = reinvestmentRateDomain.Clamp(p.ReinvestmentRate)
	return p
}

// InDomain reports whether every numeric field is inside its domain.
func (p OperatingParameters) InDomain() bool {
	return hashRateDomain.Contains(p.HashRate) &&
		powerConsumptionDomain.Contains(p.PowerConsumption) &&
		electricityCostDomain.Contains(p.ElectricityCost) &&
		reinvestmentRateDomain.Contains(p.ReinvestmentRate)
}

// DailyEnergyCost returns powerConsumption * 24h * electricityCost.
func (p OperatingParameters) DailyEnergyCost() float64 {
	return p.PowerConsumption * 24 * p.ElectricityCost
}

// HashEfficiency returns TH/s delivered per kW drawn.
func (p OperatingParameters) HashEfficiency() float64 {
	if p.PowerConsumption == 0 {
		return 0
	}
	return p.HashRate / p.PowerConsumption
}

// Value returns the numeric field named by one of the Field* constants.
func (p OperatingParameters) Value(field string) float64 {
	switch field {
	case FieldHashRate:
		return p.HashRate
	case FieldPowerConsumption:
		return p.PowerConsumption
	case FieldElectricityCost:
		return p.ElectricityCost
	case FieldReinvestmentRate:
		return p.ReinvestmentRate
	}
	return math.NaN()
}

// OutOfDomain lists the numeric fields Normalize would change.
func (p OperatingParameters) OutOfDomain() []string {
	var fields []string
	for _, d := range Domains() {
		if !d.Contains(p.Value(d.Field)) {
			fields = append(fields, d.Field)
		}
	}
	return fields
}
