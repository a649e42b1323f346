package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Driver    DriverConfig
	Cache     CacheConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// DriverConfig controls the retailer driver.
type DriverConfig struct {
	// BaseURI is the retailer site root. Override for staging mirrors.
	BaseURI string // default: "https://www.woolworths.com.au"

	// FetchTimeout is the deadline for a single page fetch.
	FetchTimeout time.Duration // default: 30s

	// FetchRate is the sustained outbound fetch rate in requests per
	// second, shared across all lookups. Zero disables throttling.
	FetchRate float64 // default: 2

	// FetchBurst is the maximum outbound fetch burst.
	FetchBurst int // default: 4

	// SearchWorkers bounds concurrent page fetches during a full traversal.
	SearchWorkers int // default: 4

	// CacheTTL is how long fetched markup is memoized.
	CacheTTL time.Duration // default: 24h
}

// CacheConfig selects the markup cache backend.
type CacheConfig struct {
	// Backend is "memory" or "redis".
	Backend string // default: "memory"

	// RedisURL is required when Backend is "redis".
	RedisURL string

	// CleanupInterval is how often the memory backend purges expired entries.
	CleanupInterval time.Duration // default: 10m
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: true

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key API rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per API key.
	Burst int // default: 10
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("SHELFWATCH_HOST", "0.0.0.0"),
			Port: envIntOr("SHELFWATCH_PORT", 8080),
			Mode: envOr("SHELFWATCH_MODE", "release"),
		},
		Driver: DriverConfig{
			BaseURI:       envOr("SHELFWATCH_BASE_URI", "https://www.woolworths.com.au"),
			FetchTimeout:  envDurationOr("SHELFWATCH_FETCH_TIMEOUT", 30*time.Second),
			FetchRate:     envFloatOr("SHELFWATCH_FETCH_RATE", 2.0),
			FetchBurst:    envIntOr("SHELFWATCH_FETCH_BURST", 4),
			SearchWorkers: envIntOr("SHELFWATCH_SEARCH_WORKERS", 4),
			CacheTTL:      envDurationOr("SHELFWATCH_CACHE_TTL", 24*time.Hour),
		},
		Cache: CacheConfig{
			Backend:         envOr("SHELFWATCH_CACHE_BACKEND", "memory"),
			RedisURL:        os.Getenv("SHELFWATCH_REDIS_URL"),
			CleanupInterval: envDurationOr("SHELFWATCH_CACHE_CLEANUP", 10*time.Minute),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("SHELFWATCH_AUTH_ENABLED", true),
			APIKeys: envSliceOr("SHELFWATCH_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("SHELFWATCH_RATE_RPS", 5.0),
			Burst:             envIntOr("SHELFWATCH_RATE_BURST", 10),
		},
		Log: LogConfig{
			Level:  envOr("SHELFWATCH_LOG_LEVEL", "info"),
			Format: envOr("SHELFWATCH_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
