package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"landing/internal/landing/handler"
	"landing/internal/platform/config"
	"landing/internal/platform/metrics"
	"landing/internal/platform/middleware"
	"landing/pkg/platform/middleware/metadata"
	"landing/pkg/platform/middleware/requesttime"
)

// newRouter builds the middleware chain. Response headers are stamped before
// handlers run so a handler that sets cookies can mark its response no-store.
func newRouter(cfg config.Server, log *slog.Logger, m *metrics.Metrics, landing *handler.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.ForwardedHost)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.Latency(m))
	r.Use(middleware.ResponseHeaders(cfg.ServerLocation))

	landing.Register(r)
	r.Handle("/metrics", promhttp.Handler())
	return r
}
