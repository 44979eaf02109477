package matching

import (
	"github.com/shopspring/decimal"

	"github.com/wyhar1/execsim/config"
	"github.com/wyhar1/execsim/models"
	"github.com/wyhar1/execsim/types"
)

// OrderKey positions an order inside a book tree. Price is the limit price
// for resting orders and the trigger price for stop orders.
type OrderKey struct {
	Handle   models.Handle
	Side     types.OrderSide
	Price    decimal.Decimal
	Sequence uint64
}

func newOrderKey(h models.Handle, o models.Order) *OrderKey {
	return &OrderKey{
		Handle:   h,
		Side:     o.Side,
		Price:    o.Price.Decimal,
		Sequence: o.Sequence,
	}
}

// Comparator orders a book side so that the best order is the greatest:
// lowest ask, highest bid, and for equal prices the earliest arrival.
func Comparator(a, b interface{}) (result int) {
	this := a.(*OrderKey)
	that := b.(*OrderKey)

	if this.Side != that.Side {
		config.Logger.Errorf("[execsim.orderbook] compare order with different sides")
	}

	if this.Handle == that.Handle {
		return
	}

	switch {
	case this.Side == types.SideSell && this.Price.LessThan(that.Price):
		result = 1

	case this.Side == types.SideSell && this.Price.GreaterThan(that.Price):
		result = -1

	case this.Side == types.SideBuy && this.Price.LessThan(that.Price):
		result = -1

	case this.Side == types.SideBuy && this.Price.GreaterThan(that.Price):
		result = 1

	default:
		if this.Sequence < that.Sequence {
			result = 1
		} else {
			result = -1
		}
	}

	return
}

// StopComparator orders pending stops so the next one to trigger is the
// greatest: lowest trigger for stop buys, highest for stop sells.
func StopComparator(a, b interface{}) int {
	this := *a.(*OrderKey)
	that := *b.(*OrderKey)

	this.Side = this.Side.Opposite()
	that.Side = that.Side.Opposite()

	return Comparator(&this, &that)
}
