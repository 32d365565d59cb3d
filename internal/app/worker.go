package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"go-storefront/internal/config"
	"go-storefront/internal/messaging/kafka/producer"
	"go-storefront/internal/outbox"
)

// RunWorker publishes the redis outbox to kafka until SIGINT/SIGTERM.
func RunWorker(cfg *config.Config, logger *zap.Logger) error {
	logger = logger.Named("worker")
	logger.Info("starting outbox processor")

	if cfg.RedisAddr == "" || cfg.KafkaBroker == "" {
		return errors.New("worker needs REDIS_ADDR and KAFKA_BROKER")
	}

	// 1. Connect to redis
	rdb, err := connectRedisWithRetry(cfg.RedisAddr, connectRetries, logger)
	if err != nil {
		return err
	}
	defer rdb.Close()

	// 2. Setup Kafka writer
	writer, err := connectKafkaWithRetry(cfg.KafkaBroker, cfg.KafkaTopic, connectRetries, logger)
	if err != nil {
		return err
	}
	defer writer.Close()

	// 3. Start processor
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(ctx, outbox.NewRedisRepository(rdb), writer, cfg.OutboxPollInterval, logger)

	// 4. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	cancel()
	time.Sleep(1 * time.Second)
	logger.Info("stopped")

	return nil
}
