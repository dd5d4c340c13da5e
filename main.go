package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/utils"

	"gradhub_backend/internals/configs"
	database "gradhub_backend/internals/databases"
	notifService "gradhub_backend/internals/features/notifications/notification/service"
	scheduler "gradhub_backend/internals/features/notifications/scheduler"
	"gradhub_backend/internals/mailer"
	middlewares "gradhub_backend/internals/middlewares"
	routes "gradhub_backend/internals/route"
	"gradhub_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// request id + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	database.ConnectDB()
	database.TunePool()
	database.WarmUp()

	if err := database.MigrateDatabase(database.DB); err != nil {
		log.Fatalf("❌ migration failed: %v", err)
	}
	seeds.Run(database.DB)

	var m mailer.Mailer
	if configs.SMTPHost != "" {
		m = mailer.NewSMTPMailer()
		log.Println("✅ SMTP mailer configured.")
	} else {
		m = mailer.NewConsoleMailer()
		log.Println("⚠️ SMTP_HOST not set, emails go to the log only.")
	}
	notifications := notifService.NewNotificationService(database.DB, m)

	schedCtx, stopScheduler := context.WithCancel(context.Background())
	scheduler.StartNotificationScheduler(schedCtx, database.DB, notifications, configs.NotificationPollInterval)

	routes.SetupRoutes(app, database.DB, notifications)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	stopScheduler()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
