package cache

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process Store backed by an expiring cache. It is safe for
// concurrent use.
type Memory struct {
	store *gocache.Cache
}

// NewMemory creates a Memory store. Expired entries are purged every
// cleanupInterval.
func NewMemory(cleanupInterval time.Duration) *Memory {
	return &Memory{store: gocache.New(DefaultTTL, cleanupInterval)}
}

func (m *Memory) Remember(ctx context.Context, key string, ttl time.Duration, producer Producer) (string, error) {
	if v, ok := m.store.Get(key); ok {
		if s, ok := v.(string); ok {
			return s, nil
		}
	}

	value, err := producer(ctx)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(value) != "" {
		m.store.Set(key, value, ttl)
	}
	return value, nil
}
