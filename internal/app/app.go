package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"go-storefront/internal/cache"
	"go-storefront/internal/config"
	"go-storefront/internal/messaging/bus"
	"go-storefront/internal/messaging/kafka/consumer"
	"go-storefront/internal/messaging/kafka/producer"
	"go-storefront/internal/outbox"
	"go-storefront/internal/pkg/apperror"
	"go-storefront/internal/pkg/response"
	"go-storefront/internal/upstream"
)

// BuildApp wires the gateway into router and starts its background loops.
// The returned func stops them and releases connections.
//
// Event pipeline by configuration:
//   - redis and kafka: events go to the redis outbox; cmd/worker publishes them
//   - kafka only: events are buffered in memory and published from this process
//   - no kafka: events flow through an in-process bus into the cache invalidator
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) (func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	closers := []func(){cancel}
	shutdown := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// 1. Setup Infrastructure
	var rdb redis.UniversalClient
	store := cache.Cache(cache.NopCache{})
	if cfg.RedisAddr != "" {
		client, err := connectRedisWithRetry(cfg.RedisAddr, connectRetries, logger)
		if err != nil {
			shutdown()
			return nil, err
		}
		rdb = client
		closers = append(closers, func() { _ = client.Close() })
		store = cache.NewRedisCache(client, "")
	} else {
		logger.Warn("REDIS_ADDR empty: caching and idempotency disabled")
	}

	loader := cache.NewLoader(store, cfg.CacheTTL, logger.Named("cache"))

	var outboxRepo outbox.Repository
	if rdb != nil {
		outboxRepo = outbox.NewRedisRepository(rdb)
	} else {
		outboxRepo = outbox.NewMemoryRepository()
	}

	switch {
	case cfg.KafkaBroker == "":
		b := bus.New(0)
		go producer.ProcessOutboxEvents(ctx, outboxRepo, b, cfg.OutboxPollInterval, logger.Named("producer"))
		go consumer.ConsumeMessages(ctx, b, loader, logger.Named("consumer"))
		logger.Info("kafka not configured: events handled in process")
	case rdb == nil:
		writer, err := connectKafkaWithRetry(cfg.KafkaBroker, cfg.KafkaTopic, connectRetries, logger)
		if err != nil {
			shutdown()
			return nil, err
		}
		closers = append(closers, func() { _ = writer.Close() })
		go producer.ProcessOutboxEvents(ctx, outboxRepo, writer, cfg.OutboxPollInterval, logger.Named("producer"))
	}

	client := upstream.NewClient(upstream.Options{
		BaseURL: cfg.UpstreamBaseURL,
		Timeout: cfg.UpstreamTimeout,
		Logger:  logger,
	})

	// 2. Register Modules & Routes
	router.GET("/health", func(c *gin.Context) {
		if rdb != nil {
			if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
				response.Error(c, http.StatusServiceUnavailable, apperror.CodeInternalError, "redis unreachable", nil)
				return
			}
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	})

	registerModules(router, cfg, modules{
		client: client,
		loader: loader,
		outbox: outbox.NewService(outboxRepo),
		rdb:    rdb,
	}, logger)

	return shutdown, nil
}
