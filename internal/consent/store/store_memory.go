package store

import (
	"sync"
	"time"

	"landing/internal/consent/cookies"
	"landing/internal/consent/models"
)

// MemoryJar is an in-memory cookie jar with browser semantics: one value per
// name, expired cookies are invisible, and writing an already expired cookie
// deletes it.
type MemoryJar struct {
	mu      sync.RWMutex
	entries []models.Entry
	now     func() time.Time
}

// MemoryOption configures a MemoryJar.
type MemoryOption func(*MemoryJar)

// WithClock overrides the jar's notion of now.
func WithClock(now func() time.Time) MemoryOption {
	return func(j *MemoryJar) {
		j.now = now
	}
}

func NewMemoryJar(opts ...MemoryOption) *MemoryJar {
	j := &MemoryJar{now: time.Now}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// NewMemoryJarFromRaw seeds a jar with session cookies parsed from raw.
func NewMemoryJarFromRaw(raw string, opts ...MemoryOption) *MemoryJar {
	j := NewMemoryJar(opts...)
	for _, p := range cookies.Parse(raw) {
		j.entries = append(j.entries, models.Entry{Name: p.Name, Value: p.Value})
	}
	return j
}

func (j *MemoryJar) Cookies() string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	now := j.now()
	pairs := make([]cookies.Pair, 0, len(j.entries))
	for _, e := range j.entries {
		if e.Expired(now) {
			continue
		}
		pairs = append(pairs, cookies.Pair{Name: e.Name, Value: e.Value})
	}
	return cookies.Format(pairs)
}

func (j *MemoryJar) SetCookie(entry models.Entry) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for i := range j.entries {
		if j.entries[i].Name != entry.Name {
			continue
		}
		if entry.Expired(j.now()) {
			j.entries = append(j.entries[:i], j.entries[i+1:]...)
			return
		}
		j.entries[i] = entry
		return
	}
	if entry.Expired(j.now()) {
		return
	}
	j.entries = append(j.entries, entry)
}

// Entry returns the stored entry for name, including its expiry.
func (j *MemoryJar) Entry(name string) (models.Entry, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	for _, e := range j.entries {
		if e.Name == name && !e.Expired(j.now()) {
			return e, true
		}
	}
	return models.Entry{}, false
}
