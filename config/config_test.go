package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 8080 || cfg.Server.Mode != "release" {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Driver.BaseURI != "https://www.woolworths.com.au" {
		t.Errorf("BaseURI = %q", cfg.Driver.BaseURI)
	}
	if cfg.Driver.FetchTimeout != 30*time.Second || cfg.Driver.CacheTTL != 24*time.Hour {
		t.Errorf("Driver durations = %+v", cfg.Driver)
	}
	if cfg.Driver.FetchRate != 2.0 || cfg.Driver.FetchBurst != 4 || cfg.Driver.SearchWorkers != 4 {
		t.Errorf("Driver throttle = %+v", cfg.Driver)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("Cache.Backend = %q", cfg.Cache.Backend)
	}
	if !cfg.Auth.Enabled {
		t.Error("auth should default to enabled")
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SHELFWATCH_PORT", "9090")
	t.Setenv("SHELFWATCH_BASE_URI", "https://mirror.example.test")
	t.Setenv("SHELFWATCH_FETCH_TIMEOUT", "5s")
	t.Setenv("SHELFWATCH_SEARCH_WORKERS", "8")
	t.Setenv("SHELFWATCH_CACHE_BACKEND", "redis")
	t.Setenv("SHELFWATCH_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SHELFWATCH_AUTH_ENABLED", "false")
	t.Setenv("SHELFWATCH_API_KEYS", "alpha, beta ,,gamma")
	t.Setenv("SHELFWATCH_LOG_FORMAT", "text")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
	if cfg.Driver.BaseURI != "https://mirror.example.test" {
		t.Errorf("BaseURI = %q", cfg.Driver.BaseURI)
	}
	if cfg.Driver.FetchTimeout != 5*time.Second {
		t.Errorf("FetchTimeout = %v", cfg.Driver.FetchTimeout)
	}
	if cfg.Driver.SearchWorkers != 8 {
		t.Errorf("SearchWorkers = %d", cfg.Driver.SearchWorkers)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Auth.Enabled {
		t.Error("auth should be disabled")
	}
	if want := []string{"alpha", "beta", "gamma"}; !reflect.DeepEqual(cfg.Auth.APIKeys, want) {
		t.Errorf("APIKeys = %v, want %v", cfg.Auth.APIKeys, want)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q", cfg.Log.Format)
	}
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("SHELFWATCH_PORT", "not-a-port")
	t.Setenv("SHELFWATCH_FETCH_RATE", "fast")
	t.Setenv("SHELFWATCH_CACHE_TTL", "tomorrow")

	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want the default", cfg.Server.Port)
	}
	if cfg.Driver.FetchRate != 2.0 {
		t.Errorf("FetchRate = %v, want the default", cfg.Driver.FetchRate)
	}
	if cfg.Driver.CacheTTL != 24*time.Hour {
		t.Errorf("CacheTTL = %v, want the default", cfg.Driver.CacheTTL)
	}
}
