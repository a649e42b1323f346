package cache

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by a Redis instance, for sharing fetched markup
// across service replicas.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to Redis using a URL such as redis://localhost:6379/0
// and verifies the connection with a ping.
func NewRedis(ctx context.Context, url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Redis{client: client}, nil
}

func (r *Redis) Remember(ctx context.Context, key string, ttl time.Duration, producer Producer) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err == nil {
		return value, nil
	}
	if err != redis.Nil {
		// A backend failure degrades to a cache miss.
		slog.Warn("redis cache read failed", "key", key, "error", err)
	}

	value, err = producer(ctx)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(value) != "" {
		if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
			slog.Warn("redis cache write failed", "key", key, "error", err)
		}
	}
	return value, nil
}

// Close releases the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}
