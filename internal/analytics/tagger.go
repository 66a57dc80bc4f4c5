package analytics

import (
	"context"
	"log/slog"
	"sync"

	"landing/pkg/requestcontext"
)

// Recorder counts initialised integrations. *metrics.Metrics satisfies it.
type Recorder interface {
	IncrementAnalyticsInitialized(integration string)
}

// Tagger initialises every integration into a page's data layer. A Tagger
// belongs to one page and initialises at most once.
type Tagger struct {
	layer        *DataLayer
	integrations []Integration
	logger       *slog.Logger
	recorder     Recorder
	once         sync.Once
	done         bool
}

type Option func(*Tagger)

func WithLogger(logger *slog.Logger) Option {
	return func(t *Tagger) {
		t.logger = logger
	}
}

func WithRecorder(r Recorder) Option {
	return func(t *Tagger) {
		t.recorder = r
	}
}

func NewTagger(layer *DataLayer, integrations []Integration, opts ...Option) *Tagger {
	t := &Tagger{
		layer:        layer,
		integrations: integrations,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Initialize installs all integrations. Later calls are no-ops.
func (t *Tagger) Initialize(ctx context.Context) {
	t.once.Do(func() {
		t.done = true
		now := requestcontext.Now(ctx)
		for _, in := range t.integrations {
			in.Install(t.layer, now)
			if t.recorder != nil {
				t.recorder.IncrementAnalyticsInitialized(in.Name())
			}
		}
		t.logger.DebugContext(ctx, "analytics initialised",
			"request_id", requestcontext.RequestID(ctx),
			"integrations", len(t.integrations),
			"commands", t.layer.Len(),
		)
	})
}

// Initialized reports whether Initialize has run.
func (t *Tagger) Initialized() bool {
	return t.done
}

