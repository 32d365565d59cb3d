package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"go-storefront/internal/cache"
	"go-storefront/internal/config"
	"go-storefront/internal/messaging/kafka/consumer"
)

// RunConsumer reads storefront events and drops the shared cache entries
// they make stale.
func RunConsumer(cfg *config.Config, logger *zap.Logger) error {
	logger = logger.Named("consumer")
	logger.Info("starting catalog cache consumer")

	if cfg.RedisAddr == "" || cfg.KafkaBroker == "" {
		return errors.New("consumer needs REDIS_ADDR and KAFKA_BROKER")
	}

	// 1. Connect to redis
	rdb, err := connectRedisWithRetry(cfg.RedisAddr, connectRetries, logger)
	if err != nil {
		return err
	}
	defer rdb.Close()

	loader := cache.NewLoader(cache.NewRedisCache(rdb, ""), cfg.CacheTTL, logger)

	// 2. Setup Kafka reader
	reader := newKafkaReader(cfg.KafkaBroker, cfg.KafkaTopic, cfg.KafkaGroupID)
	defer reader.Close()
	logger.Info("kafka reader initialized",
		zap.String("topic", cfg.KafkaTopic),
		zap.String("group_id", cfg.KafkaGroupID),
	)

	// 3. Start consuming
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeMessages(ctx, reader, loader, logger)

	// 4. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	cancel()
	logger.Info("stopped")

	return nil
}
