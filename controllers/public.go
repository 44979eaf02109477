package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/wyhar1/execsim/controllers/entities"
	"github.com/wyhar1/execsim/controllers/helpers"
	"github.com/wyhar1/execsim/controllers/queries"
	"github.com/wyhar1/execsim/metrics"
	"github.com/wyhar1/execsim/server"
)

type PublicController struct {
	Server *server.EngineServer
}

func GetTimestamp(c *fiber.Ctx) error {
	return c.Status(200).JSON(time.Now())
}

func (p PublicController) GetDepth(c *fiber.Ctx) error {
	var errs = new(helpers.Errors)

	marketID := c.Params("market")
	params := new(queries.DepthQuery)
	if err := c.QueryParser(params); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_query"},
		})
	}

	helpers.Vaildate(params, errs)

	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	if params.Limit == 0 {
		params.Limit = 100
	}

	depth, found := p.Server.FetchOrderBook(marketID, params.Limit)
	if !found {
		return c.Status(404).JSON(helpers.Errors{
			Errors: []string{"public.market.doesnt_exist"},
		})
	}

	return c.Status(200).JSON(depth)
}

func (p PublicController) SetMarketPrice(c *fiber.Ctx) error {
	errs := new(helpers.Errors)
	payload := new(helpers.MarketPriceParams)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})
	}

	helpers.Vaildate(payload, errs)

	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	price, err := decimal.NewFromString(payload.Price)
	if err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"market.price.invalid_price"},
		})
	}

	reports, err := p.Server.SetMarketPrice(c.Params("market"), price)
	if err != nil {
		return helpers.ErrorResponse(c, err)
	}

	return c.Status(200).JSON(fiber.Map{
		"market":  c.Params("market"),
		"price":   price,
		"reports": reports,
	})
}

func (p PublicController) GetPnL(c *fiber.Ctx) error {
	summary := p.Server.Summary()
	ledger := p.Server.Tracker.Ledger()

	return c.Status(200).JSON(entities.PnLEntity{
		Summary:     summary,
		Performance: metrics.Compute(ledger, summary, p.Server.Tracker.StartingCash()),
	})
}
