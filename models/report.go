package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyhar1/execsim/types"
)

// Report is an execution report for one side of a fill. Every fill produces
// two reports sharing a MatchID, one per order.
type Report struct {
	MatchID        uint64             `json:"match_id"`
	OrderID        string             `json:"order_id"`
	Symbol         string             `json:"symbol"`
	Side           types.OrderSide    `json:"side"`
	FilledQuantity int64              `json:"filled_quantity"`
	Price          decimal.Decimal    `json:"price"`
	Timestamp      time.Time          `json:"timestamp"`
	Status         types.ReportStatus `json:"status"`
	Synthetic      bool               `json:"synthetic"`
}

// NewReport builds the report for o filling quantity at price. o is the
// order as it was before the fill.
func NewReport(matchID uint64, o Order, quantity int64, price decimal.Decimal, at time.Time) Report {
	status := types.ReportPartialFill
	if quantity == o.Quantity {
		status = types.ReportFilled
	}

	return Report{
		MatchID:        matchID,
		OrderID:        o.ID,
		Symbol:         o.Symbol,
		Side:           o.Side,
		FilledQuantity: quantity,
		Price:          price,
		Timestamp:      at,
		Status:         status,
		Synthetic:      o.Synthetic,
	}
}

// Total is the notional value of the fill.
func (r Report) Total() decimal.Decimal {
	return r.Price.Mul(decimal.NewFromInt(r.FilledQuantity))
}
