package queries

import (
	"time"

	"github.com/gookit/validate"

	"github.com/wyhar1/execsim/server"
	"github.com/wyhar1/execsim/types"
)

type TradeFilters struct {
	Market   string          `query:"market"`
	Type     types.OrderSide `query:"type" validate:"VaildateType"`
	Limit    int             `query:"limit" validate:"uint|max:1000"`
	Page     int             `query:"page" validate:"uint"`
	TimeFrom int64           `query:"time_from" validate:"uint"`
	TimeTo   int64           `query:"time_to" validate:"uint"`
	OrderBy  types.OrderBy   `query:"order_by" validate:"VaildateOrderBy"`
}

func (t TradeFilters) VaildateType(val types.OrderSide) bool {
	return len(val) == 0 || val == types.SideBuy || val == types.SideSell
}

func (t TradeFilters) VaildateOrderBy(val types.OrderBy) bool {
	return len(val) == 0 || val == types.OrderByAsc || val == types.OrderByDesc
}

func (t TradeFilters) Messages() map[string]string {
	invalid_message := "market.trade.invalid_{field}"

	return validate.MS{
		"uint":            invalid_message,
		"max":             invalid_message,
		"VaildateType":    invalid_message,
		"VaildateOrderBy": invalid_message,
	}
}

// Filter converts the query into a trade log filter. Times are unix seconds.
func (t TradeFilters) Filter() server.TradeFilter {
	filter := server.TradeFilter{
		Market:    t.Market,
		TakerType: t.Type,
		OrderBy:   t.OrderBy,
		Limit:     t.Limit,
		Page:      t.Page,
	}

	if t.TimeFrom > 0 {
		filter.TimeFrom = time.Unix(t.TimeFrom, 0)
	}
	if t.TimeTo > 0 {
		filter.TimeTo = time.Unix(t.TimeTo, 0)
	}

	return filter
}
