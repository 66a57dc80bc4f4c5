package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landing/internal/consent/models"
	"landing/internal/landing/cache"
	"landing/internal/landing/handler"
	"landing/internal/platform/config"
	"landing/pkg/testutil"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	pages := cache.NewPages(cache.NewInMemoryStore())
	landing := handler.New(pages, log, nil)
	return newRouter(config.Server{ServerLocation: "UKS"}, log, nil, landing)
}

func TestRouterLandingHeaders(t *testing.T) {
	r := newTestRouter(t)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "public, must-revalidate, max-age=30, s-maxage=90", rr.Header().Get("Cache-Control"))
	assert.Equal(t, "UKS", rr.Header().Get("PHE-Server-Loc"))
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	assert.NotEmpty(t, rr.Header().Get("Expires"))
}

func TestRouterAcceptIsNotCacheable(t *testing.T) {
	r := newTestRouter(t)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/cookies/accept", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))

	var names []string
	for _, c := range rr.Result().Cookies() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{models.PolicyCookieName, models.PreferencesSetCookieName}, names)
}

func TestRouterMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouterConsentJourney(t *testing.T) {
	r := newTestRouter(t)

	testutil.Given(t, "a first-time visitor", func(t *testing.T) {
		testutil.When(t, "they accept cookies and load the next page", func(t *testing.T) {
			accept := testutil.DoRequest(r, testutil.NewFormRequest(t, "/cookies/accept"))
			testutil.AssertStatusOK(t, accept)

			next := testutil.NewRequest(t, http.MethodGet, "/")
			for _, c := range accept.Result().Cookies() {
				next.AddCookie(c)
			}
			page := testutil.DoRequest(r, next)

			testutil.Then(t, "the banner stays hidden", func(t *testing.T) {
				testutil.AssertStatusOK(t, page)
				html := string(testutil.ReadBody(t, page))
				assert.Equal(t, 2, strings.Count(html, "display: none; visibility: hidden"))
				assert.NotContains(t, html, "display: block")
			})
		})

		testutil.When(t, "they dismiss the decision message", func(t *testing.T) {
			rr := testutil.DoRequest(r, testutil.NewFormRequest(t, "/cookies/hide-decision"))

			testutil.Then(t, "they are sent back to the page", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusSeeOther)
				assert.Equal(t, "/", rr.Header().Get("Location"))
			})
		})
	})
}
