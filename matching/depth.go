package matching

import (
	rbt "github.com/emirpasic/gods/trees/redblacktree"
	"github.com/shopspring/decimal"

	"github.com/wyhar1/execsim/models"
	"github.com/wyhar1/execsim/types"
)

// Levels aggregates up to limit price levels of one side, best first.
// A non-positive limit returns every level.
func (ob *OrderBook) Levels(side types.OrderSide, limit int) []*PriceLevel {
	var tree *rbt.Tree
	if side == types.SideSell {
		tree = ob.Asks
	} else {
		tree = ob.Bids
	}

	levels := make([]*PriceLevel, 0)

	it := tree.Iterator()
	it.End()
	for it.Prev() {
		key := it.Key().(*OrderKey)
		o := ob.store.MustGet(it.Value().(models.Handle))

		n := len(levels)
		if n > 0 && levels[n-1].Price.Equal(key.Price) {
			levels[n-1].Add(o.Quantity)
			continue
		}

		if limit > 0 && n >= limit {
			break
		}

		level := &PriceLevel{Side: side, Price: key.Price}
		level.Add(o.Quantity)
		levels = append(levels, level)
	}

	return levels
}

// FetchOrderBook returns the aggregated depth in [price, quantity] pairs.
func (ob *OrderBook) FetchOrderBook(limit int) types.Depth {
	result := types.Depth{
		Asks:     make([][]decimal.Decimal, 0),
		Bids:     make([][]decimal.Decimal, 0),
		Sequence: ob.lastMatchID,
	}

	for _, pl := range ob.Levels(types.SideSell, limit) {
		result.Asks = append(result.Asks, []decimal.Decimal{pl.Price, decimal.NewFromInt(pl.Total)})
	}

	for _, pl := range ob.Levels(types.SideBuy, limit) {
		result.Bids = append(result.Bids, []decimal.Decimal{pl.Price, decimal.NewFromInt(pl.Total)})
	}

	return result
}
