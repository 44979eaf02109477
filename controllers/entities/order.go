package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyhar1/execsim/types"
)

type OrderEntity struct {
	ID              string              `json:"id"`
	Market          string              `json:"market"`
	Side            types.OrderSide     `json:"side"`
	OrdType         types.OrderType     `json:"ord_type"`
	Price           decimal.NullDecimal `json:"price"`
	State           types.OrderStatus   `json:"state"`
	OriginVolume    int64               `json:"origin_volume"`
	RemainingVolume int64               `json:"remaining_volume"`
	ExecutedVolume  int64               `json:"executed_volume"`
	Synthetic       bool                `json:"synthetic"`
	UpdatedAt       time.Time           `json:"updated_at"`
}
