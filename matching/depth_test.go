package matching

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/wyhar1/execsim/models"
	"github.com/wyhar1/execsim/types"
)

func TestLevels(t *testing.T) {
	store := models.NewOrderStore()
	orderBook := NewOrderBook("BTC/USD", store, nil)

	for _, o := range []models.Order{
		limit("1", types.SideSell, "10.10", 3),
		limit("2", types.SideSell, "10.00", 4),
		limit("3", types.SideSell, "10.10", 5),
		limit("4", types.SideSell, "10.20", 6),
	} {
		o.Symbol = "BTC/USD"
		h, err := store.Put(o)
		assert.NoError(t, err)
		orderBook.Add(h)
	}

	levels := orderBook.Levels(types.SideSell, 2)

	assert.Len(t, levels, 2)
	assert.True(t, decimal.RequireFromString("10.00").Equal(levels[0].Price))
	assert.Equal(t, int64(4), levels[0].Total)
	assert.True(t, decimal.RequireFromString("10.10").Equal(levels[1].Price))
	assert.Equal(t, int64(8), levels[1].Total)
	assert.Equal(t, 2, levels[1].Orders)

	assert.Len(t, orderBook.Levels(types.SideSell, 0), 3)
	assert.Empty(t, orderBook.Levels(types.SideBuy, 0))
}

func TestFetchOrderBookEmpty(t *testing.T) {
	orderBook := NewOrderBook("BTC/USD", models.NewOrderStore(), nil)

	depth := orderBook.FetchOrderBook(10)

	assert.NotNil(t, depth.Asks)
	assert.NotNil(t, depth.Bids)
	assert.Empty(t, depth.Asks)
	assert.Equal(t, uint64(0), depth.Sequence)
}
