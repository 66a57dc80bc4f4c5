package store

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landing/internal/consent/models"
)

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func clockAt(t *time.Time) func() time.Time {
	return func() time.Time { return *t }
}

func TestMemoryJar(t *testing.T) {
	now := fixedNow
	jar := NewMemoryJar(WithClock(clockAt(&now)))

	jar.SetCookie(models.Entry{Name: "a", Value: "1", Expires: now.Add(time.Hour)})
	jar.SetCookie(models.Entry{Name: "b", Value: "2"})
	assert.Equal(t, "a=1; b=2", jar.Cookies())

	t.Run("last write wins", func(t *testing.T) {
		jar.SetCookie(models.Entry{Name: "a", Value: "3", Expires: now.Add(time.Hour)})
		assert.Equal(t, "a=3; b=2", jar.Cookies())
	})

	t.Run("expired entries are hidden", func(t *testing.T) {
		now = fixedNow.Add(2 * time.Hour)
		assert.Equal(t, "b=2", jar.Cookies())
		_, ok := jar.Entry("a")
		assert.False(t, ok)
		now = fixedNow
	})

	t.Run("writing an expired cookie deletes it", func(t *testing.T) {
		jar.SetCookie(models.Entry{Name: "b", Value: "", Expires: now.Add(-time.Second)})
		assert.Equal(t, "a=3", jar.Cookies())
	})

	t.Run("entry keeps expiry", func(t *testing.T) {
		e, ok := jar.Entry("a")
		require.True(t, ok)
		assert.Equal(t, now.Add(time.Hour), e.Expires)
	})
}

func TestNewMemoryJarFromRaw(t *testing.T) {
	jar := NewMemoryJarFromRaw(" x=1 ;y=2")
	assert.Equal(t, "x=1; y=2", jar.Cookies())
}

func TestDisabledJar(t *testing.T) {
	var jar DisabledJar
	jar.SetCookie(models.Entry{Name: "a", Value: "1"})
	assert.Empty(t, jar.Cookies())
}

func TestHTTPJar(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/cookies/accept", nil)
	req.Header.Add("Cookie", "session=abc")
	req.Header.Add("Cookie", "theme=dark")
	rec := httptest.NewRecorder()

	jar := NewHTTPJar(rec, req, WithSecure(true), WithRequestClock(func() time.Time { return fixedNow }))
	assert.Equal(t, "session=abc; theme=dark", jar.Cookies())

	expires := fixedNow.AddDate(0, 1, 0)
	jar.SetCookie(models.Entry{Name: models.PreferencesSetCookieName, Value: "true", Expires: expires})

	assert.Equal(t, "session=abc; theme=dark; cookies_preferences_set_21_3=true", jar.Cookies())

	resp := rec.Result()
	defer resp.Body.Close()
	written := resp.Cookies()
	require.Len(t, written, 1)
	assert.Equal(t, models.PreferencesSetCookieName, written[0].Name)
	assert.Equal(t, "true", written[0].Value)
	assert.Equal(t, "/", written[0].Path)
	assert.True(t, written[0].Secure)
	assert.True(t, expires.Equal(written[0].Expires), "expires %v", written[0].Expires)
}
