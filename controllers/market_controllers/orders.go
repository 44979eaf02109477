package market_controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wyhar1/execsim/controllers/entities"
	"github.com/wyhar1/execsim/controllers/helpers"
	"github.com/wyhar1/execsim/models"
	"github.com/wyhar1/execsim/server"
	"github.com/wyhar1/execsim/types"
)

type OrderController struct {
	Server *server.EngineServer
}

func OrderToEntity(order models.Order, state types.OrderStatus) entities.OrderEntity {
	return entities.OrderEntity{
		ID:              order.ID,
		Market:          order.Symbol,
		Side:            order.Side,
		OrdType:         order.Type,
		Price:           order.Price,
		State:           state,
		OriginVolume:    order.OriginQuantity,
		RemainingVolume: order.Quantity,
		ExecutedVolume:  order.FilledQuantity(),
		Synthetic:       order.Synthetic,
		UpdatedAt:       order.Timestamp,
	}
}

func (o OrderController) CreateOrder(c *fiber.Ctx) error {
	errors := new(helpers.Errors)
	payload := new(helpers.CreateOrderParams)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})
	}

	helpers.Vaildate(payload, errors)

	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	ack, err := o.Server.SubmitOrder(payload.BuildOrder())
	if err != nil {
		return helpers.ErrorResponse(c, err)
	}

	return c.Status(201).JSON(ack)
}

func (o OrderController) GetOrder(c *fiber.Ctx) error {
	order, state, err := o.Server.Order(c.Params("id"))
	if err != nil {
		return helpers.ErrorResponse(c, err)
	}

	return c.Status(200).JSON(OrderToEntity(order, state))
}

func (o OrderController) UpdateOrder(c *fiber.Ctx) error {
	payload := new(helpers.UpdateOrderParams)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})
	}

	if !payload.Volume.Valid && !payload.Price.Valid {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"market.order.missing_amendment"},
		})
	}

	ack, err := o.Server.AmendOrder(c.Params("id"), payload.Volume, payload.Price)
	if err != nil {
		return helpers.ErrorResponse(c, err)
	}

	return c.Status(200).JSON(ack)
}

func (o OrderController) CancelOrder(c *fiber.Ctx) error {
	ack, err := o.Server.CancelOrder(c.Params("id"))
	if err != nil {
		return helpers.ErrorResponse(c, err)
	}

	return c.Status(200).JSON(ack)
}
