package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gestaoverbas/registro-system/internal/api"
	"github.com/gestaoverbas/registro-system/internal/core/ports"
	"github.com/gestaoverbas/registro-system/internal/infrastructure/config"
	mongodb "github.com/gestaoverbas/registro-system/internal/infrastructure/db/mongo"
	redisdb "github.com/gestaoverbas/registro-system/internal/infrastructure/db/redis"
	"github.com/gestaoverbas/registro-system/internal/infrastructure/queue"
	"github.com/gestaoverbas/registro-system/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting registro api")

	ctx := context.Background()

	client, stores, err := mongodb.Connect(ctx, mongodb.Config{
		URI:           cfg.Mongo.URI,
		Database:      cfg.Mongo.Database,
		TestsDatabase: cfg.Mongo.TestsDatabase,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.EnsureEmpresaIndexes(ctx, stores); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}
	if err := mongodb.EnsureAccountIndexes(ctx, stores); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer func() { _ = rdb.Close() }()

	var publisher ports.NotificationPublisher
	if cfg.AMQP.URI != "" {
		pub, err := queue.NewPublisher(cfg.AMQP.URI, cfg.AMQP.Queue)
		if err != nil {
			log.Fatal().Err(err).Msg("rabbitmq connect failed")
		}
		defer func() { _ = pub.Close() }()
		publisher = pub
	} else {
		log.Warn().Msg("AMQP_URI not set, notification fan-out disabled")
	}

	e := api.NewRouter(api.Dependencies{
		Stores:    stores,
		Redis:     rdb,
		Publisher: publisher,
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
	log.Info().Msg("server stopped")
}
