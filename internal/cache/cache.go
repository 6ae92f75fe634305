package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/apexauto/garage-api/internal/config"
	"github.com/apexauto/garage-api/internal/logger"
)

// Cache keys.
const (
	KeyFinanceSummary = "garage:finance:summary"
)

// Cache is a thin JSON cache over redis. A nil *Cache is valid and behaves
// as a permanent miss, so the API runs fine without redis.
type Cache struct {
	rdb *redis.Client
}

// NewRedis connects to redis; a failed ping returns nil and the caller runs
// uncached.
func NewRedis(cfg *config.Config) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.L().Warn("redis unavailable, caching disabled", zap.Error(err))
		return nil
	}

	return &Cache{rdb: rdb}
}

func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}

	return json.Unmarshal(raw, dest) == nil
}

func (c *Cache) Set(ctx context.Context, key string, v any, ttl time.Duration) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		logger.L().Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.L().Warn("cache invalidate failed", zap.Error(err))
	}
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
