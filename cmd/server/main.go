package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/oshxona/internal/bot"
	"github.com/example/oshxona/internal/config"
	"github.com/example/oshxona/internal/database"
	"github.com/example/oshxona/internal/gateway"
	"github.com/example/oshxona/internal/routes"
	"github.com/example/oshxona/internal/scheduler"
	"github.com/example/oshxona/internal/session"
	"github.com/example/oshxona/internal/storage"
)

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	if err := database.Seed(db); err != nil {
		log.Fatalf("database seed failed: %v", err)
	}
	log.Printf("[Database] Initialized (%s)", cfg.DBType)

	store := storage.NewGormStore(db)

	var sessions session.Store
	switch cfg.SessionBackend {
	case "redis":
		sessions = session.NewRedisStore(cfg.RedisAddr)
	default:
		sessions = session.NewMemoryStore()
	}

	sched := scheduler.New(store, cfg.ConfirmDelay)
	if err := sched.Start(); err != nil {
		log.Fatalf("scheduler start failed: %v", err)
	}
	defer sched.Stop()

	client := gateway.NewClient(cfg.BotToken)
	orderBot := bot.New(store, sessions, client, sched, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("[Bot] Polling started: %s", cfg.RestaurantName)
		client.Poll(ctx, func(e gateway.Event) {
			orderBot.HandleEvent(ctx, e)
		})
	}()

	app := fiber.New(fiber.Config{
		AppName: "Oshxona Backend",
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	routes.Register(app, store, client, sched, cfg)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		_ = app.Shutdown()
	}()

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
