package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyhar1/execsim/types"
)

type TradeEntity struct {
	ID           uint64          `json:"id"`
	Market       string          `json:"market"`
	Price        decimal.Decimal `json:"price"`
	Amount       int64           `json:"amount"`
	Total        decimal.Decimal `json:"total"`
	TakerType    types.OrderSide `json:"taker_type"`
	TakerOrderID string          `json:"taker_order_id"`
	MakerOrderID string          `json:"maker_order_id"`
	Synthetic    bool            `json:"synthetic"`
	CreatedAt    time.Time       `json:"created_at"`
}
