package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/agsports/valuepicks/internal/pkg/config"
)

// PicksCache is a small Redis read cache for the picks endpoint. A nil
// cache is valid and always misses, so wiring stays unconditional.
type PicksCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPicksCache connects to Redis. Returns nil (and logs) when Redis is
// disabled or unreachable; the API serves from Postgres either way.
func NewPicksCache(cfg *config.RedisConfig) *PicksCache {
	if !cfg.Enabled {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis unreachable, picks cache disabled", "addr", cfg.Addr, "error", err)
		return nil
	}

	slog.Info("Picks cache initialized", "addr", cfg.Addr, "ttl", cfg.PicksTTL)
	return &PicksCache{client: client, ttl: cfg.PicksTTL}
}

// Get returns the cached payload for a key, or nil on miss or error.
func (c *PicksCache) Get(ctx context.Context, key string) []byte {
	if c == nil {
		return nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("Picks cache read failed", "key", key, "error", err)
		}
		return nil
	}
	return data
}

// Set stores a payload with the configured TTL. Errors are logged only.
func (c *PicksCache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		slog.Warn("Picks cache write failed", "key", key, "error", err)
	}
}

// Close releases the Redis connection.
func (c *PicksCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
