// Package store holds the cookie jars the consent controller reads from and
// writes to. None of them report write failures: a jar that cannot persist a
// cookie simply drops it.
package store

import "landing/internal/consent/models"

// Store is the page's cookie storage.
type Store interface {
	// Cookies returns the visible cookies as a raw "a=1; b=2" string.
	Cookies() string
	// SetCookie writes or replaces a cookie. Last write wins.
	SetCookie(entry models.Entry)
}

// DisabledJar models a browser with cookie storage turned off.
type DisabledJar struct{}

func (DisabledJar) Cookies() string { return "" }

func (DisabledJar) SetCookie(models.Entry) {}
