package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-storefront/internal/app"
	"go-storefront/internal/config"
	"go-storefront/internal/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	l, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatal(err)
	}
	defer l.Sync()

	if err := app.RunConsumer(cfg, l); err != nil {
		l.Fatal("consumer failed", zap.Error(err))
	}
}
