package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/fsobarzo/resto-orders/internal/application/service"
	"github.com/fsobarzo/resto-orders/internal/cache"
	"github.com/fsobarzo/resto-orders/internal/config"
	"github.com/fsobarzo/resto-orders/internal/database"
	"github.com/fsobarzo/resto-orders/internal/events"
	"github.com/fsobarzo/resto-orders/internal/httpapi"
	"github.com/fsobarzo/resto-orders/internal/observability"
	"github.com/fsobarzo/resto-orders/internal/payment"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool := database.Connect(ctx, cfg.DSN())
	defer pool.Close()
	repo := database.New(pool)

	dishCache, err := cache.New(cfg.CacheCap)
	if err != nil {
		logger.Fatal("cache init failed", zap.Error(err))
	}
	dishCache.Warm(ctx, repo)

	gateway := payment.New(cfg.Stripe.SecretKey, cfg.Stripe.APIURL)

	metrics := observability.NewInmem(1000)

	var publisher service.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		if err := events.EnsureTopic(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic,
			cfg.Kafka.Partitions, cfg.Kafka.Replication, logger); err != nil {
			logger.Fatal("kafka topic setup failed", zap.Error(err))
		}
		p := events.NewPublisher(
			events.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic),
			cfg.EventRetry,
			logger,
		)
		defer p.Close()
		publisher = p
	} else {
		logger.Warn("KAFKA_BROKERS not set, order events disabled")
	}

	svc := service.NewService(repo, dishCache, gateway, publisher, logger, metrics)

	auth := httpapi.NewAuth(cfg.JWTSecret, repo, logger)
	server := httpapi.New(svc, auth, cfg.CORSOrigins, logger, metrics)

	logger.Info("server starting", zap.String("addr", cfg.HTTPAddr))
	if err := server.ListenAndServe(ctx, cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
