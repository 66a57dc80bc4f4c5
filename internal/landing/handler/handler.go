// Package handler serves the landing page and its cookie consent actions.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"landing/internal/analytics"
	"landing/internal/consent/controller"
	"landing/internal/consent/metrics"
	"landing/internal/consent/store"
	"landing/internal/landing/view"
	"landing/internal/platform/middleware"
	"landing/internal/ui"
	dErrors "landing/pkg/domain-errors"
	"landing/pkg/platform/httputil"
	"landing/pkg/requestcontext"
)

// Cache keys for the two landing page variants.
const (
	KeyUndecided = "page:undecided"
	KeyConsented = "page:consented"
)

// PageCache renders on miss and shares the rendered page between visitors in
// the same consent state.
type PageCache interface {
	Fetch(ctx context.Context, key string, render func() ([]byte, error)) ([]byte, error)
	Ping(ctx context.Context) error
}

// Handler handles the landing page endpoints.
type Handler struct {
	logger        *slog.Logger
	pages         PageCache
	metrics       *metrics.Metrics
	integrations  []analytics.Integration
	secureCookies bool
	tracer        trace.Tracer
}

type Option func(*Handler)

// WithIntegrations replaces the analytics integrations started on accept.
func WithIntegrations(integrations ...analytics.Integration) Option {
	return func(h *Handler) {
		h.integrations = integrations
	}
}

// WithSecureCookies marks consent cookies Secure.
func WithSecureCookies(secure bool) Option {
	return func(h *Handler) {
		h.secureCookies = secure
	}
}

// New creates a landing page Handler.
func New(pages PageCache, logger *slog.Logger, metrics *metrics.Metrics, opts ...Option) *Handler {
	h := &Handler{
		logger:       logger,
		pages:        pages,
		metrics:      metrics,
		integrations: analytics.DefaultIntegrations(),
		tracer:       otel.Tracer("landing/internal/landing/handler"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register registers the landing routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.handleLanding)
	r.Post("/cookies/accept", h.handleAccept)
	r.Post("/cookies/hide-decision", h.handleHideDecision)
	r.Get("/healthcheck", h.handleHealth)
	r.Head("/healthcheck", h.handleHealth)
}

// consentPage is one page instance with its controller attached.
type consentPage struct {
	page   *ui.Page
	layer  *analytics.DataLayer
	tagger *analytics.Tagger
	ctrl   *controller.Controller
}

func (h *Handler) newConsentPage(w http.ResponseWriter, r *http.Request) *consentPage {
	ctx := r.Context()
	page := ui.NewLandingPage()
	layer := analytics.NewDataLayer()
	tagger := analytics.NewTagger(layer, h.integrations,
		analytics.WithLogger(h.logger),
		analytics.WithRecorder(h.metrics),
	)
	jar := store.NewHTTPJar(w, r,
		store.WithSecure(h.secureCookies),
		store.WithRequestClock(func() time.Time { return requestcontext.Now(ctx) }),
	)
	ctrl := controller.New(jar, tagger, page,
		controller.WithLogger(h.logger),
		controller.WithMetrics(h.metrics),
	)
	return &consentPage{page: page, layer: layer, tagger: tagger, ctrl: ctrl}
}

// handleLanding renders the landing page with the banner in the visitor's
// consent state. Both variants are cached.
func (h *Handler) handleLanding(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "landing.render")
	defer span.End()
	requestID := middleware.GetRequestID(ctx)

	cp := h.newConsentPage(w, r)
	if err := cp.ctrl.Run(ctx, cp.page); err != nil {
		h.fail(ctx, w, err, "failed to apply consent state")
		return
	}

	key := KeyConsented
	if cp.page.Visible(ui.CookieBanner) {
		key = KeyUndecided
	}
	span.SetAttributes(attribute.String("landing.variant", key))

	body, err := h.pages.Fetch(ctx, key, func() ([]byte, error) {
		return view.Render(view.FromPage(cp.page, nil))
	})
	if err != nil {
		h.fail(ctx, w, err, "failed to render landing page")
		return
	}

	h.logger.DebugContext(ctx, "landing page served",
		"request_id", requestID,
		"variant", key,
	)
	writeHTML(w, http.StatusOK, body)
}

// handleAccept records consent and renders the page with the decision
// confirmation and the analytics bootstrap. The response sets cookies and is
// never cached.
func (h *Handler) handleAccept(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "landing.accept")
	defer span.End()

	cp := h.newConsentPage(w, r)
	if err := cp.ctrl.Run(ctx, cp.page); err != nil {
		h.fail(ctx, w, err, "failed to apply consent state")
		return
	}
	if err := cp.page.Click(ctx, ui.AcceptCookies); err != nil {
		h.fail(ctx, w, err, "failed to accept cookies")
		return
	}
	span.SetAttributes(attribute.Bool("analytics.initialized", cp.tagger.Initialized()))

	body, err := view.Render(view.FromPage(cp.page, cp.layer))
	if err != nil {
		h.fail(ctx, w, err, "failed to render landing page")
		return
	}

	middleware.NoStore(w)
	writeHTML(w, http.StatusOK, body)
}

// handleHideDecision dismisses the decision confirmation. The confirmation
// only exists on the accept response, so the visitor goes back to the page.
func (h *Handler) handleHideDecision(w http.ResponseWriter, r *http.Request) {
	middleware.NoStore(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type healthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	middleware.NoStore(w)

	status := http.StatusOK
	resp := healthResponse{Status: "ok", Cache: "ok"}
	if err := h.pages.Ping(ctx); err != nil {
		h.logger.WarnContext(ctx, "page cache unhealthy",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		status = http.StatusServiceUnavailable
		resp = healthResponse{Status: "unavailable", Cache: "unavailable"}
	}

	if r.Method == http.MethodHead {
		if status == http.StatusOK {
			status = http.StatusNoContent
		}
		w.WriteHeader(status)
		return
	}
	httputil.WriteJSON(w, status, resp)
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, err error, msg string) {
	h.logger.ErrorContext(ctx, msg,
		"request_id", middleware.GetRequestID(ctx),
		"error", err.Error(),
	)
	if dErrors.HasCode(err, dErrors.CodeTimeout) {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, msg))
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
