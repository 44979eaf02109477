package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/wyhar1/execsim/controllers"
	"github.com/wyhar1/execsim/controllers/market_controllers"
	"github.com/wyhar1/execsim/server"
)

func SetupRouter(srv *server.EngineServer) *fiber.App {
	app := fiber.New()
	app.Use(recover.New())

	public := controllers.PublicController{Server: srv}
	orders := market_controllers.OrderController{Server: srv}

	app.Get("/api/v2/public/timestamp", controllers.GetTimestamp)
	app.Get("/api/v2/markets/:market/depth", public.GetDepth)
	app.Post("/api/v2/markets/:market/price", public.SetMarketPrice)
	app.Get("/api/v2/pnl", public.GetPnL)

	app.Post("/api/v2/orders", orders.CreateOrder)
	app.Get("/api/v2/orders/:id", orders.GetOrder)
	app.Put("/api/v2/orders/:id", orders.UpdateOrder)
	app.Delete("/api/v2/orders/:id", orders.CancelOrder)
	app.Get("/api/v2/trades", orders.GetTrades)

	return app
}
