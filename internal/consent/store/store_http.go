package store

import (
	"net/http"
	"strings"
	"time"

	"landing/internal/consent/models"
)

// HTTPJar binds a jar to one request/response pair. Reads see the request's
// cookies plus anything written while handling the request; every write is
// also sent to the client as a Set-Cookie header.
type HTTPJar struct {
	w      http.ResponseWriter
	jar    *MemoryJar
	path   string
	secure bool
}

// HTTPOption configures an HTTPJar.
type HTTPOption func(*HTTPJar)

// WithSecure marks written cookies Secure.
func WithSecure(secure bool) HTTPOption {
	return func(j *HTTPJar) {
		j.secure = secure
	}
}

// WithPath scopes written cookies to path. Defaults to "/".
func WithPath(path string) HTTPOption {
	return func(j *HTTPJar) {
		j.path = path
	}
}

// WithRequestClock makes expiry checks use now.
func WithRequestClock(now func() time.Time) HTTPOption {
	return func(j *HTTPJar) {
		j.jar.now = now
	}
}

func NewHTTPJar(w http.ResponseWriter, r *http.Request, opts ...HTTPOption) *HTTPJar {
	raw := strings.Join(r.Header.Values("Cookie"), "; ")
	j := &HTTPJar{
		w:    w,
		jar:  NewMemoryJarFromRaw(raw),
		path: "/",
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func (j *HTTPJar) Cookies() string {
	return j.jar.Cookies()
}

func (j *HTTPJar) SetCookie(entry models.Entry) {
	j.jar.SetCookie(entry)
	http.SetCookie(j.w, &http.Cookie{
		Name:     entry.Name,
		Value:    entry.Value,
		Path:     j.path,
		Expires:  entry.Expires,
		Secure:   j.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
