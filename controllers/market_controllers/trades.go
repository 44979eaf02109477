package market_controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/wyhar1/execsim/controllers/entities"
	"github.com/wyhar1/execsim/controllers/helpers"
	"github.com/wyhar1/execsim/controllers/queries"
	"github.com/wyhar1/execsim/models"
)

func TradeToEntity(trade models.Trade) entities.TradeEntity {
	return entities.TradeEntity{
		ID:           trade.ID,
		Market:       trade.Symbol,
		Price:        trade.Price,
		Amount:       trade.Amount,
		Total:        trade.Total,
		TakerType:    trade.TakerType,
		TakerOrderID: trade.TakerOrderID,
		MakerOrderID: trade.MakerOrderID,
		Synthetic:    trade.Synthetic,
		CreatedAt:    trade.CreatedAt,
	}
}

func (o OrderController) GetTrades(c *fiber.Ctx) error {
	var errors = new(helpers.Errors)

	params := new(queries.TradeFilters)

	if err := c.QueryParser(params); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_query"},
		})
	}

	helpers.Vaildate(params, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	filter := params.Filter()
	trades := o.Server.Trades(filter)

	trades_json := make([]entities.TradeEntity, 0, len(trades))
	for _, trade := range trades {
		trades_json = append(trades_json, TradeToEntity(trade))
	}

	page := filter.Page
	if page == 0 {
		page = 1
	}

	c.Response().Header.Add("page", strconv.Itoa(page))
	c.Response().Header.Add("per-page", strconv.Itoa(len(trades)))

	return c.Status(200).JSON(trades_json)
}
