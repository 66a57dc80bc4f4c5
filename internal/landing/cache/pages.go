package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"landing/pkg/platform/sentinel"
	"landing/pkg/requestcontext"
)

// DefaultTTL matches how long the landing page may be served stale.
const DefaultTTL = 120 * time.Second

// Recorder counts cache lookups by result: "hit", "miss" or "error".
type Recorder interface {
	IncrementCacheResult(result string)
}

// Pages fronts a Store with render-on-miss. Concurrent misses for the same
// key render once.
type Pages struct {
	store    Store
	ttl      time.Duration
	group    singleflight.Group
	logger   *slog.Logger
	recorder Recorder
	tracer   trace.Tracer
}

type PagesOption func(*Pages)

func WithTTL(ttl time.Duration) PagesOption {
	return func(p *Pages) {
		if ttl > 0 {
			p.ttl = ttl
		}
	}
}

func WithLogger(logger *slog.Logger) PagesOption {
	return func(p *Pages) {
		p.logger = logger
	}
}

func WithRecorder(r Recorder) PagesOption {
	return func(p *Pages) {
		p.recorder = r
	}
}

func NewPages(store Store, opts ...PagesOption) *Pages {
	p := &Pages{
		store:  store,
		ttl:    DefaultTTL,
		logger: slog.Default(),
		tracer: otel.Tracer("landing/internal/landing/cache"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Fetch returns the cached value for key, rendering and storing it on a miss.
// An unavailable store degrades to rendering every request.
func (p *Pages) Fetch(ctx context.Context, key string, render func() ([]byte, error)) ([]byte, error) {
	ctx, span := p.tracer.Start(ctx, "page_cache.fetch", trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	body, err := p.store.Get(ctx, key)
	switch {
	case err == nil:
		p.record("hit")
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return body, nil
	case errors.Is(err, sentinel.ErrNotFound):
		p.record("miss")
	default:
		p.record("error")
		p.logger.WarnContext(ctx, "page cache read failed",
			"request_id", requestcontext.RequestID(ctx),
			"key", key,
			"error", err.Error(),
		)
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	v, err, _ := p.group.Do(key, func() (any, error) {
		rendered, err := render()
		if err != nil {
			return nil, err
		}
		if err := p.store.Set(ctx, key, rendered, p.ttl); err != nil {
			p.logger.WarnContext(ctx, "page cache write failed",
				"request_id", requestcontext.RequestID(ctx),
				"key", key,
				"error", err.Error(),
			)
		}
		return rendered, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Ping checks the backing store.
func (p *Pages) Ping(ctx context.Context) error {
	return p.store.Ping(ctx)
}

func (p *Pages) record(result string) {
	if p.recorder != nil {
		p.recorder.IncrementCacheResult(result)
	}
}
