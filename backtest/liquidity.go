package backtest

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wyhar1/execsim/models"
	"github.com/wyhar1/execsim/oms"
	"github.com/wyhar1/execsim/types"
)

// OrderEntry accepts orders on behalf of a liquidity provider.
type OrderEntry interface {
	NewOrder(order models.Order) (oms.Ack, error)
}

// LiquidityProvider stands in for the rest of the market: it rests a
// synthetic counter order so a strategy order can trade at the bar price.
// Fills of synthetic orders never reach the position tracker.
type LiquidityProvider struct {
	entry OrderEntry
}

func NewLiquidityProvider(entry OrderEntry) *LiquidityProvider {
	return &LiquidityProvider{entry: entry}
}

// Provide rests quantity at price on the side opposite to side and returns
// the id of the synthetic order.
func (lp *LiquidityProvider) Provide(symbol string, side types.OrderSide, quantity int64, price decimal.Decimal, at time.Time) (string, error) {
	ack, err := lp.entry.NewOrder(models.Order{
		ID:        "lp-" + uuid.New().String(),
		Symbol:    symbol,
		Side:      side.Opposite(),
		Type:      types.TypeLimit,
		Quantity:  quantity,
		Price:     decimal.NewNullDecimal(price),
		Timestamp: at,
		Synthetic: true,
	})
	if err != nil {
		return "", err
	}

	return ack.OrderID, nil
}
