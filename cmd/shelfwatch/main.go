package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/shelfwatch/shelfwatch/api"
	"github.com/shelfwatch/shelfwatch/cache"
	"github.com/shelfwatch/shelfwatch/config"
	"github.com/shelfwatch/shelfwatch/engine"
	"github.com/shelfwatch/shelfwatch/woolworths"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	_ = godotenv.Load()
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("shelfwatch starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"driver", woolworths.Identifier,
		"baseURI", cfg.Driver.BaseURI,
	)

	// ── 3. Initialise markup cache ──────────────────────────────────
	store, closeStore, err := newStore(cfg.Cache)
	if err != nil {
		slog.Error("failed to initialise cache backend", "backend", cfg.Cache.Backend, "error", err)
		os.Exit(1)
	}
	defer closeStore()
	slog.Info("markup cache ready", "backend", cfg.Cache.Backend, "ttl", cfg.Driver.CacheTTL)

	// ── 4. Initialise fetch engine and shared throttle ──────────────
	eng := engine.NewHTTPEngine(cfg.Driver.FetchTimeout)

	fetchLimit := rate.Inf
	if cfg.Driver.FetchRate > 0 {
		fetchLimit = rate.Limit(cfg.Driver.FetchRate)
	}
	limiter := rate.NewLimiter(fetchLimit, max(cfg.Driver.FetchBurst, 1))

	// Drivers carry per-session page state; build one per request, sharing
	// the engine, cache and outbound throttle.
	newDriver := func() *woolworths.Driver {
		return woolworths.New(eng, store, limiter, cfg.Driver)
	}

	// ── 5. Setup router ─────────────────────────────────────────────
	startTime := time.Now()
	router := api.NewRouter(newDriver, cfg, startTime)

	// ── 6. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 7. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight requests 5 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("shelfwatch stopped")
}

// newStore builds the configured cache backend. The returned closer is a
// no-op for the memory backend.
func newStore(cfg config.CacheConfig) (cache.Store, func(), error) {
	switch cfg.Backend {
	case "", "memory":
		return cache.NewMemory(cfg.CleanupInterval), func() {}, nil
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		store, err := cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
