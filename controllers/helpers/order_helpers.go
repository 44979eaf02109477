package helpers

import (
	"github.com/gookit/validate"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"github.com/wyhar1/execsim/models"
	"github.com/wyhar1/execsim/types"
)

type CreateOrderParams struct {
	ID        string              `json:"id" form:"id"`
	Market    string              `json:"market" form:"market" validate:"required"`
	Side      types.OrderSide     `json:"side" form:"side" validate:"required|VaildateSide"`
	OrdType   types.OrderType     `json:"ord_type" form:"ord_type" validate:"required|VaildateOrdType"`
	Price     decimal.NullDecimal `json:"price" form:"price"`
	Volume    int64               `json:"volume" form:"volume" validate:"required|VaildateVolume"`
	Synthetic bool                `json:"synthetic" form:"synthetic"`
}

func (p CreateOrderParams) Messages() map[string]string {
	invalid_message := "market.order.invalid_{field}"

	return validate.MS{
		"required":        invalid_message,
		"VaildateSide":    invalid_message,
		"VaildateOrdType": invalid_message,
		"VaildateVolume":  "market.order.non_positive_volume",
	}
}

func (p CreateOrderParams) VaildateSide(val types.OrderSide) bool {
	return val == types.SideBuy || val == types.SideSell
}

func (p CreateOrderParams) VaildateOrdType(val types.OrderType) bool {
	return val == types.TypeMarket || val.Priced()
}

func (p CreateOrderParams) VaildateVolume(val int64) bool {
	return val > 0
}

// BuildOrder maps the request onto an order. Price rules are left to the OMS.
func (p CreateOrderParams) BuildOrder() models.Order {
	return models.Order{
		ID:        p.ID,
		Symbol:    p.Market,
		Side:      p.Side,
		Type:      p.OrdType,
		Price:     p.Price,
		Quantity:  p.Volume,
		Synthetic: p.Synthetic,
	}
}

// UpdateOrderParams carries an amendment; absent fields stay unchanged.
type UpdateOrderParams struct {
	Volume null.Int64          `json:"volume"`
	Price  decimal.NullDecimal `json:"price"`
}

type MarketPriceParams struct {
	Price string `json:"price" form:"price" validate:"required"`
}

func (p MarketPriceParams) Messages() map[string]string {
	return VaildateMessage("market.price")
}
