// Package cache memoizes fetched markup by key for a fixed duration. The
// cache affects performance only, never correctness: every store degrades to
// recomputing when a backend misbehaves.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// DefaultTTL is how long fetched markup stays fresh.
const DefaultTTL = 24 * time.Hour

// Producer computes the value to cache on a miss.
type Producer func(ctx context.Context) (string, error)

// Store memoizes string payloads for a fixed duration.
type Store interface {
	// Remember returns the cached value for key if present, otherwise runs
	// producer, stores a non-blank result for ttl, and returns it. A producer
	// error is returned unchanged and nothing is stored. Blank results are
	// never stored, so a transient fetch failure is not pinned for the TTL.
	Remember(ctx context.Context, key string, ttl time.Duration, producer Producer) (string, error)
}

// Key derives a deterministic cache key from its parts, typically the driver
// identity plus an identifier or query cache key.
func Key(parts ...string) string {
	h := sha256.New()
	for i, p := range parts {
		if i > 0 {
			h.Write([]byte("|"))
		}
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}
