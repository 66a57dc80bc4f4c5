// Package controller decides whether the cookie consent banner is shown and
// records the visitor's decision when they accept.
package controller

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"landing/internal/consent/cookies"
	"landing/internal/consent/metrics"
	"landing/internal/consent/models"
	"landing/internal/ui"
	dErrors "landing/pkg/domain-errors"
	"landing/pkg/requestcontext"
)

//go:generate mockgen -destination=mocks/sink-mock.go -package=mocks landing/internal/consent/controller AnalyticsSink

// Store is the page's cookie storage. Writes have no error path.
type Store interface {
	Cookies() string
	SetCookie(entry models.Entry)
}

// AnalyticsSink starts tagging once consent is given. The controller does not
// inspect its outcome.
type AnalyticsSink interface {
	Initialize(ctx context.Context)
}

// Surface is the set of page operations the controller needs.
type Surface interface {
	ShowElement(id string) error
	HideElement(id string) error
	OnClick(id string, handler func(ctx context.Context) error) error
}

// Lifecycle reports whether the page is still loading.
type Lifecycle interface {
	Loading() bool
	ContentLoaded() <-chan struct{}
}

// Controller is bound to a single page.
type Controller struct {
	store   Store
	sink    AnalyticsSink
	surface Surface
	now     func(ctx context.Context) time.Time
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(*Controller)

// WithClock overrides the request-scoped clock.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = func(context.Context) time.Time { return now() }
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

func New(store Store, sink AnalyticsSink, surface Surface, opts ...Option) *Controller {
	c := &Controller{
		store:   store,
		sink:    sink,
		surface: surface,
		now:     requestcontext.Now,
		logger:  slog.Default(),
		tracer:  otel.Tracer("landing/internal/consent/controller"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Decided reports whether raw carries the consent flag set to "true".
// The flag is located by name prefix.
func Decided(raw string) bool {
	pair, ok := cookies.FindPrefix(raw, models.PreferencesSetCookieName)
	return ok && pair.Value == models.PreferencesSetValue
}

// Run wires the accept control and applies the current consent state. If the
// page is still loading it waits for the content-loaded signal first.
func (c *Controller) Run(ctx context.Context, page Lifecycle) error {
	if page != nil && page.Loading() {
		select {
		case <-page.ContentLoaded():
		case <-ctx.Done():
			return dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "page content never loaded")
		}
	}
	if err := c.surface.OnClick(ui.AcceptCookies, c.AcceptConsent); err != nil {
		return err
	}
	return c.DetermineConsentState(ctx)
}

// DetermineConsentState shows the banner unless the consent flag is set.
// The banner's default is hidden, so a decided visitor needs no action.
func (c *Controller) DetermineConsentState(ctx context.Context) error {
	_, span := c.tracer.Start(ctx, "consent.determine_state")
	defer span.End()

	decided := Decided(c.store.Cookies())
	span.SetAttributes(attribute.Bool("consent.decided", decided))
	if decided {
		return nil
	}
	if err := c.surface.ShowElement(ui.CookieBanner); err != nil {
		return err
	}
	c.metrics.IncrementBannerShown()
	return nil
}

// AcceptConsent records acceptance of all cookie categories for one calendar
// month, starts analytics and swaps the banner for the decision confirmation.
//
// The policy cookie is written before analytics starts and the flag after it,
// so a panic inside the sink leaves the flag unset and the banner returns on
// the next page.
func (c *Controller) AcceptConsent(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, "consent.accept")
	defer span.End()

	record := models.NewRecord(models.AcceptAll, c.now(ctx))

	c.store.SetCookie(models.Entry{
		Name:    models.PolicyCookieName,
		Value:   cookies.EscapeComponent(models.AcceptAll.Encode()),
		Expires: record.ExpiresAt,
	})

	c.sink.Initialize(ctx)

	c.store.SetCookie(models.Entry{
		Name:    models.PreferencesSetCookieName,
		Value:   models.PreferencesSetValue,
		Expires: record.ExpiresAt,
	})

	if err := c.surface.ShowElement(ui.DecisionBanner); err != nil {
		return err
	}
	if err := c.surface.HideElement(ui.CookieBanner); err != nil {
		return err
	}
	if err := c.surface.OnClick(ui.HideDecision, func(context.Context) error {
		return c.surface.HideElement(ui.DecisionBanner)
	}); err != nil {
		return err
	}

	c.metrics.IncrementAccepted()
	c.logger.InfoContext(ctx, "cookie consent accepted",
		"request_id", requestcontext.RequestID(ctx),
		"expires_at", record.ExpiresAt,
	)
	return nil
}
