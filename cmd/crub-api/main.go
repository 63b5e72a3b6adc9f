package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"crub-courses/internal/api"
	"crub-courses/internal/config"
	"crub-courses/internal/service"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err == nil {
		err = cfg.RequireAdmin()
	}
	if err != nil {
		log.Fatal(err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	svc, err := service.FromConfig(cfg, logger)
	if err != nil {
		logger.Fatal("service setup failed", zap.Error(err))
	}

	h := api.NewHandler(svc, logger)
	router := api.NewRouter(h, api.Credentials{User: cfg.AdminUser, Pass: cfg.AdminPass}, logger)

	// Leave headroom over the source timeout for aggregation and encoding.
	srv := api.NewServer(cfg.HTTPAddr, router, cfg.HTTPTimeout+10*time.Second, logger)
	if err := srv.Run(context.Background()); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
