package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aricheng/vitalcheck/internal/api"
	"github.com/aricheng/vitalcheck/internal/config"
	"github.com/aricheng/vitalcheck/internal/db"
	"github.com/aricheng/vitalcheck/internal/logging"
	"github.com/aricheng/vitalcheck/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	log := logging.New("vitalcheck")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Warn().Str("tz", cfg.Timezone).Msg("invalid timezone, falling back to UTC")
		location = time.UTC
	}

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}

	var mailer services.Mailer
	if cfg.SMTP.Host != "" {
		mailer = services.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	} else {
		log.Warn().Msg("no SMTP host configured, verification codes go to the log")
		mailer = services.NewLogMailer(log)
	}

	handler := api.NewHandler(database, api.Options{
		SecretKey:    []byte(cfg.SecretKey),
		Location:     location,
		CookieSecure: cfg.CookieSecure,
		SessionTTL:   cfg.SessionTTL,
		Logger:       log,
		Mailer:       mailer,
	})

	app := fiber.New(fiber.Config{
		AppName:               "VitalCheck",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().Str("address", cfg.Address).Str("db", cfg.DBPath).Msg("listening")
	if err := app.Listen(cfg.Address); err != nil {
		log.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
}
