package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	connectRetries    = 5
	connectRetryDelay = 3 * time.Second
)

func connectRedisWithRetry(addr string, maxRetries int, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	var err error
	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err = rdb.Ping(ctx).Err()
		cancel()
		if err == nil {
			logger.Info("connected to redis", zap.String("addr", addr))
			return rdb, nil
		}

		logger.Warn("redis connect retry", zap.Int("attempt", i), zap.Int("max", maxRetries), zap.Error(err))
		if i < maxRetries {
			time.Sleep(connectRetryDelay)
		}
	}

	_ = rdb.Close()
	return nil, fmt.Errorf("connect redis %s: %w", addr, err)
}

func connectKafkaWithRetry(broker, topic string, maxRetries int, logger *zap.Logger) (*kafka.Writer, error) {
	var err error
	for i := 1; i <= maxRetries; i++ {
		var conn *kafka.Conn
		conn, err = kafka.Dial("tcp", broker)
		if err == nil {
			_ = conn.Close()
			logger.Info("connected to kafka", zap.String("broker", broker), zap.String("topic", topic))
			return &kafka.Writer{
				Addr:                   kafka.TCP(broker),
				Topic:                  topic,
				Balancer:               &kafka.LeastBytes{},
				AllowAutoTopicCreation: true,
			}, nil
		}

		logger.Warn("kafka connect retry", zap.Int("attempt", i), zap.Int("max", maxRetries), zap.Error(err))
		if i < maxRetries {
			time.Sleep(connectRetryDelay)
		}
	}

	return nil, fmt.Errorf("connect kafka %s: %w", broker, err)
}

func newKafkaReader(broker, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{broker},
		Topic:   topic,
		GroupID: groupID,
	})
}
