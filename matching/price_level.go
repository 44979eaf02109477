package matching

import (
	"github.com/shopspring/decimal"

	"github.com/wyhar1/execsim/types"
)

// PriceLevel aggregates the resting orders of one side at one price.
type PriceLevel struct {
	Side   types.OrderSide
	Price  decimal.Decimal
	Total  int64
	Orders int
}

func (p *PriceLevel) Add(quantity int64) {
	p.Total += quantity
	p.Orders++
}
