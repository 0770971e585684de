// Package mining implements the projection and insight engine behind the
// mining dashboard: a static coin catalog, a deterministic 21-day profit
// projection and the strategy insights derived from it.
package mining

import "fmt"

// CoinProfile is static reference data for a mineable asset.
type CoinProfile struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Volatility float64 `json:"volatility"`
	// YieldPerTH is the number of coin units mined per TH/s per day at the
	// current network difficulty and block reward.
	YieldPerTH float64 `json:"yieldPerTH"`
}

// DailyValuePerTH returns the USD value mined per TH/s per day.
func (c CoinProfile) DailyValuePerTH() float64 {
	return c.YieldPerTH * c.Price
}

var catalog = []CoinProfile{
	{ID: "bitcoin", Name: "Bitcoin", Price: 64000, Volatility: 0.28, YieldPerTH: 0.0000140625},
	{ID: "litecoin", Name: "Litecoin", Price: 84, Volatility: 0.42, YieldPerTH: 0.0105},
	{ID: "kaspa", Name: "Kaspa", Price: 0.15, Volatility: 0.61, YieldPerTH: 6.2},
}

var catalogIndex = func() map[string]int {
	idx := make(map[string]int, len(catalog))
	for i, c := range catalog {
		idx[c.ID] = i
	}
	return idx
}()

// ListCoins returns the catalog in its fixed display order. The returned slice
// is a copy and may be modified by the caller.
func ListCoins() []CoinProfile {
	out := make([]CoinProfile, len(catalog))
	copy(out, catalog)
	return out
}

// GetCoinProfile resolves a coin by id.
func GetCoinProfile(id string) (CoinProfile, error) {
	i, ok := catalogIndex[id]
	if !ok {
		return CoinProfile{}, fmt.Errorf("%w: %q", ErrUnknownCoin, id)
	}
	return catalog[i], nil
}

// HasCoin reports whether id resolves in the catalog.
func HasCoin(id string) bool {
	_, ok := catalogIndex[id]
	return ok
}
