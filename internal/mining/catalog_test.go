package mining

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCoinsOrder(t *testing.T) {
	coins := ListCoins()
	require.Len(t, coins, 3)

	ids := make([]string, len(coins))
	for i, c := range coins {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{"bitcoin", "litecoin", "kaspa"}, ids)
}

func TestListCoinsReturnsCopy(t *testing.T) {
	coins := ListCoins()
	coins[0].Price = 1

	again := ListCoins()
	assert.Equal(t, 64000.0, again[0].Price)
}

func TestCatalogInvariants(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range ListCoins() {
		assert.False(t, seen[c.ID], "duplicate coin id %s", c.ID)
		seen[c.ID] = true
		assert.NotEmpty(t, c.Name)
		assert.Greater(t, c.Price, 0.0)
		assert.GreaterOrEqual(t, c.Volatility, 0.0)
		assert.LessOrEqual(t, c.Volatility, 1.0)
		assert.Greater(t, c.YieldPerTH, 0.0)

		resolved, err := GetCoinProfile(c.ID)
		require.NoError(t, err)
		assert.Equal(t, c, resolved)
	}
}

func TestGetCoinProfileUnknown(t *testing.T) {
	_, err := GetCoinProfile("not-a-real-coin")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownCoin))
	assert.Contains(t, err.Error(), "not-a-real-coin")
}

func TestHasCoin(t *testing.T) {
	assert.True(t, HasCoin("kaspa"))
	assert.False(t, HasCoin(""))
	assert.False(t, HasCoin("Bitcoin"))
}

func TestDailyValuePerTH(t *testing.T) {
	btc, err := GetCoinProfile("bitcoin")
	require.NoError(t, err)
	assert.InDelta(t, 0.9, btc.DailyValuePerTH(), 1e-9)
}
