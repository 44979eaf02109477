package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyhar1/execsim/types"
)

// Trade joins the two reports of one fill. The taker is the order whose
// arrival caused the fill.
type Trade struct {
	ID           uint64          `json:"id"`
	Symbol       string          `json:"symbol"`
	Price        decimal.Decimal `json:"price"`
	Amount       int64           `json:"amount"`
	Total        decimal.Decimal `json:"total"`
	TakerOrderID string          `json:"taker_order_id"`
	MakerOrderID string          `json:"maker_order_id"`
	TakerType    types.OrderSide `json:"taker_type"`
	Synthetic    bool            `json:"synthetic"`
	CreatedAt    time.Time       `json:"created_at"`
}

// MatchKey identifies a match across books; match ids are per symbol.
type MatchKey struct {
	Symbol  string
	MatchID uint64
}

func (r Report) MatchKey() MatchKey {
	return MatchKey{Symbol: r.Symbol, MatchID: r.MatchID}
}

// NewTrade builds a trade from the taker and maker report of one match.
func NewTrade(taker, maker Report) Trade {
	return Trade{
		ID:           taker.MatchID,
		Symbol:       taker.Symbol,
		Price:        taker.Price,
		Amount:       taker.FilledQuantity,
		Total:        taker.Total(),
		TakerOrderID: taker.OrderID,
		MakerOrderID: maker.OrderID,
		TakerType:    taker.Side,
		Synthetic:    taker.Synthetic || maker.Synthetic,
		CreatedAt:    taker.Timestamp,
	}
}

// TradesFromReports pairs the reports of each match in the order they were
// emitted, taker first. Reports whose counterpart is missing are ignored.
func TradesFromReports(reports []Report) []Trade {
	trades := make([]Trade, 0, len(reports)/2)
	open := make(map[MatchKey]Report)

	for _, r := range reports {
		taker, found := open[r.MatchKey()]
		if !found {
			open[r.MatchKey()] = r
			continue
		}

		delete(open, r.MatchKey())
		trades = append(trades, NewTrade(taker, r))
	}

	return trades
}

func (t Trade) InfluxTags() map[string]string {
	return map[string]string{"market": t.Symbol}
}

func (t Trade) InfluxFields() map[string]interface{} {
	price, _ := t.Price.Float64()
	total, _ := t.Total.Float64()

	return map[string]interface{}{
		"id":         int64(t.ID),
		"price":      price,
		"amount":     t.Amount,
		"total":      total,
		"taker_type": string(t.TakerType),
		"synthetic":  t.Synthetic,
	}
}
