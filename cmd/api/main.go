package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-storefront/internal/app"
	"go-storefront/internal/bootstrap"
	"go-storefront/internal/config"
	"go-storefront/internal/middleware"
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

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.IdempotencyHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// build dependency + routes
	shutdown, err := app.BuildApp(r, cfg, l)
	if err != nil {
		l.Fatal("build app failed", zap.Error(err))
	}
	defer shutdown()

	err = bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:         cfg.Port,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		l,
	)
	if err != nil {
		l.Error("http server stopped", zap.Error(err))
	}
}
