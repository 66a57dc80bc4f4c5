package middleware

import (
	"net/http"
	"time"

	"landing/pkg/requestcontext"
)

const (
	// ServerLocationHeader names the region that served the response.
	ServerLocationHeader = "PHE-Server-Loc"

	publicCacheControl = "public, must-revalidate, max-age=30, s-maxage=90"
	expiresAfter       = 90 * time.Second
)

// ResponseHeaders stamps every response with freshness headers for the CDN
// and the serving location. Handlers may override Cache-Control afterwards.
func ResponseHeaders(serverLocation string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := requestcontext.Now(r.Context()).UTC()
			h := w.Header()
			h.Set("Last-Modified", now.Format(http.TimeFormat))
			h.Set("Expires", now.Add(expiresAfter).Format(http.TimeFormat))
			h.Set("Cache-Control", publicCacheControl)
			h.Set(ServerLocationHeader, serverLocation)
			next.ServeHTTP(w, r)
		})
	}
}

// NoStore marks the response uncacheable. Used when a response sets cookies.
func NoStore(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Cache-Control", "no-store")
	h.Del("Expires")
	h.Del("Last-Modified")
}

// ForwardedHost replaces the request host with X-Forwarded-Host when the
// service sits behind a proxy that rewrites it.
func ForwardedHost(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fh := r.Header.Get("X-Forwarded-Host"); fh != "" {
			r.Host = fh
		}
		next.ServeHTTP(w, r)
	})
}
