package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/oshxona/internal/config"
	"github.com/example/oshxona/internal/gateway"
	"github.com/example/oshxona/internal/handlers"
	"github.com/example/oshxona/internal/middleware"
	"github.com/example/oshxona/internal/storage"
)

// customerNotifier adapts the Telegram client to the plain-text
// notification surface the admin handlers use.
type customerNotifier struct {
	client *gateway.Client
}

func (n customerNotifier) SendText(chatID int64, text string) error {
	return n.client.SendText(chatID, text, nil)
}

// Register wires up the admin HTTP routes.
func Register(app *fiber.App, store storage.Store, client *gateway.Client, jobs handlers.JobCanceller, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(cfg)
	catalogHandler := handlers.NewCatalogHandler(store)
	orderHandler := handlers.NewOrderHandler(store, jobs, customerNotifier{client: client}, cfg.AllowCancelDelivered)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)

	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Get("/orders", orderHandler.ListOrders)
	protected.Get("/orders/:id", orderHandler.GetOrder)
	protected.Patch("/orders/:id/status", orderHandler.UpdateStatus)
	protected.Patch("/orders/:id/courier", orderHandler.UpdateCourier)
	protected.Post("/orders/:id/cancel", orderHandler.Cancel)

	protected.Get("/categories", catalogHandler.ListCategories)
	protected.Get("/products", catalogHandler.ListProducts)
}
