package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	Port           string
	AppEnv         string
	AllowedOrigins []string

	// Remote store API
	UpstreamBaseURL string
	UpstreamTimeout time.Duration

	// Infrastructure
	RedisAddr          string
	CacheTTL           time.Duration
	KafkaBroker        string
	KafkaTopic         string
	KafkaGroupID       string
	OutboxPollInterval time.Duration

	// Business constants
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
	CartMaxQuantity       int
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "3000"),
		AppEnv:         getEnv("APP_ENV", "development"),
		AllowedOrigins: getSliceEnv("ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3001"}),

		UpstreamBaseURL: strings.TrimRight(getEnv("UPSTREAM_BASE_URL", "https://kashop1.runasp.net/api"), "/"),
		UpstreamTimeout: getDurationEnv("UPSTREAM_TIMEOUT", 10*time.Second),

		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTTL:           getDurationEnv("CACHE_TTL", 5*time.Minute),
		KafkaBroker:        getEnv("KAFKA_BROKER", ""),
		KafkaTopic:         getEnv("KAFKA_TOPIC", "storefront.events"),
		KafkaGroupID:       getEnv("KAFKA_GROUP_ID", "storefront-cache-group"),
		OutboxPollInterval: getDurationEnv("OUTBOX_POLL_INTERVAL", 5*time.Second),

		FreeShippingThreshold: getDecimalEnv("SHIPPING_FREE_THRESHOLD", decimal.NewFromInt(100)),
		FlatShippingFee:       getDecimalEnv("SHIPPING_FLAT_FEE", decimal.NewFromInt(10)),
		CartMaxQuantity:       getIntEnv("CART_MAX_QUANTITY", 999),
	}
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getDecimalEnv(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil && !d.IsNegative() {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
