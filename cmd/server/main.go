package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	consentmetrics "landing/internal/consent/metrics"
	"landing/internal/landing/cache"
	"landing/internal/landing/handler"
	"landing/internal/platform/config"
	"landing/internal/platform/httpserver"
	"landing/internal/platform/logger"
	"landing/internal/platform/metrics"
	"landing/internal/platform/redis"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small.
func main() {
	config.LoadDotEnv()
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	platformMetrics := metrics.New()
	consentMetrics := consentmetrics.New()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	redisClient, err := redis.New(ctx, cfg.Redis)
	cancel()
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}

	var store cache.Store
	if redisClient != nil {
		store = cache.NewFallbackStore(
			cache.NewRedisStore(redisClient.Client),
			cache.NewInMemoryStore(),
			cache.WithFallbackLogger(log),
		)
		log.Info("page cache backed by redis")
	} else {
		store = cache.NewInMemoryStore()
		log.Info("page cache backed by memory")
	}
	pages := cache.NewPages(store,
		cache.WithTTL(cfg.PageCacheTTL),
		cache.WithLogger(log),
		cache.WithRecorder(platformMetrics),
	)

	landing := handler.New(pages, log, consentMetrics,
		handler.WithSecureCookies(cfg.SecureCookies),
	)
	router := newRouter(cfg, log, platformMetrics, landing)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting landing server", "addr", cfg.Addr, "server_location", cfg.ServerLocation)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Warn("closing redis", "error", err)
		}
	}
}
