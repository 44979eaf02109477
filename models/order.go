package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyhar1/execsim/types"
)

// Order is a single trade instruction. Once registered in an OrderStore the
// store is its only owner; callers receive copies.
type Order struct {
	ID             string              `json:"id"`
	Symbol         string              `json:"symbol"`
	Side           types.OrderSide     `json:"side"`
	Type           types.OrderType     `json:"type"`
	Quantity       int64               `json:"quantity"`
	OriginQuantity int64               `json:"origin_quantity"`
	Price          decimal.NullDecimal `json:"price"`
	Timestamp      time.Time           `json:"timestamp"`
	Synthetic      bool                `json:"synthetic"`
	Sequence       uint64              `json:"-"`
}

func (o Order) IsBid() bool {
	return o.Side == types.SideBuy
}

func (o Order) Filled() bool {
	return o.Quantity <= 0
}

// FilledQuantity is the amount executed so far.
func (o Order) FilledQuantity() int64 {
	return o.OriginQuantity - o.Quantity
}

// IsCrossed reports whether a resting order at price would trade against o.
func (o Order) IsCrossed(price decimal.Decimal) bool {
	if !o.Price.Valid {
		return true
	}

	if o.IsBid() {
		return price.LessThanOrEqual(o.Price.Decimal)
	}

	return price.GreaterThanOrEqual(o.Price.Decimal)
}

// Validate returns the error codes for every malformed field of o.
func (o Order) Validate() []string {
	errs := make([]string, 0)

	if o.Side != types.SideBuy && o.Side != types.SideSell {
		errs = append(errs, "market.order.invalid_side")
	}

	if o.Quantity <= 0 {
		errs = append(errs, "market.order.non_positive_quantity")
	}

	switch o.Type {
	case types.TypeMarket:
	case types.TypeLimit, types.TypeStop:
		if !o.Price.Valid {
			errs = append(errs, "market.order.missing_price")
		} else if !o.Price.Decimal.IsPositive() {
			errs = append(errs, "market.order.non_positive_price")
		}
	default:
		errs = append(errs, "market.order.invalid_type")
	}

	if len(o.Symbol) == 0 {
		errs = append(errs, "market.order.invalid_symbol")
	}

	return errs
}
