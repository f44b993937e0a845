package main

import (
	"context"
	"log"
	"net/http"

	"storefront-home/app"
	"storefront-home/config"
	"storefront-home/db"
	"storefront-home/logging"
)

func main() {
	// Load .env in development. In production, variables should be set directly.
	config.LoadEnvFile(".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	handler, err := app.Initialize(context.Background(), cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("❌ Failed to initialize application")
	}
	defer db.CloseDB()

	logger.WithField("addr", cfg.Addr()).Info("🚀 Server starting")
	if err := http.ListenAndServe(cfg.Addr(), handler); err != nil {
		logger.WithError(err).Fatal("❌ Server failed")
	}
}
