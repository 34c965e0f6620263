package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/taskhub/task-manager-api/internal/api"
	"github.com/taskhub/task-manager-api/internal/infrastructure/config"
	mongodb "github.com/taskhub/task-manager-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskhub/task-manager-api/internal/infrastructure/db/redis"
	"github.com/taskhub/task-manager-api/pkg/logger"
)

func main() {
	// Optional .env for local development; real environments set vars directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	e := api.NewRouter(db, rdb, cfg, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongodb disconnect failed")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close failed")
	}
}
