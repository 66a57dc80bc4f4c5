package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"landing/pkg/platform/circuit"
	"landing/pkg/platform/sentinel"
	"landing/pkg/requestcontext"
)

// FallbackStore reads and writes the primary store and switches to a
// process-local fallback once the primary has failed repeatedly. The primary
// is still tried on every call so it can close the breaker again.
type FallbackStore struct {
	primary  Store
	fallback Store
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

type FallbackOption func(*FallbackStore)

func WithBreaker(b *circuit.Breaker) FallbackOption {
	return func(s *FallbackStore) {
		s.breaker = b
	}
}

func WithFallbackLogger(logger *slog.Logger) FallbackOption {
	return func(s *FallbackStore) {
		s.logger = logger
	}
}

func NewFallbackStore(primary, fallback Store, opts ...FallbackOption) *FallbackStore {
	s := &FallbackStore{
		primary:  primary,
		fallback: fallback,
		breaker:  circuit.New("page-cache"),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FallbackStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil || errors.Is(err, sentinel.ErrNotFound) {
		if s.success(ctx) {
			return value, err
		}
		return s.fallback.Get(ctx, key)
	}
	if s.failure(ctx, err) {
		return s.fallback.Get(ctx, key)
	}
	return nil, err
}

func (s *FallbackStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := s.primary.Set(ctx, key, value, ttl)
	if err == nil {
		if s.success(ctx) {
			return nil
		}
		return s.fallback.Set(ctx, key, value, ttl)
	}
	if s.failure(ctx, err) {
		return s.fallback.Set(ctx, key, value, ttl)
	}
	return err
}

// Ping reports the primary's health; the fallback is always up.
func (s *FallbackStore) Ping(ctx context.Context) error {
	return s.primary.Ping(ctx)
}

// Degraded reports whether reads are served from the fallback.
func (s *FallbackStore) Degraded() bool {
	return s.breaker.IsOpen()
}

func (s *FallbackStore) success(ctx context.Context) bool {
	usePrimary, change := s.breaker.RecordSuccess()
	if change.Closed {
		s.logger.InfoContext(ctx, "page cache primary recovered",
			"request_id", requestcontext.RequestID(ctx),
			"breaker", s.breaker.Name(),
		)
	}
	return usePrimary
}

func (s *FallbackStore) failure(ctx context.Context, err error) bool {
	useFallback, change := s.breaker.RecordFailure()
	if change.Opened {
		s.logger.WarnContext(ctx, "page cache primary failing, using fallback",
			"request_id", requestcontext.RequestID(ctx),
			"breaker", s.breaker.Name(),
			"error", err.Error(),
		)
	}
	return useFallback
}
