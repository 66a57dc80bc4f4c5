// Package ui models the landing page's DOM on the server: which elements
// exist, whether each is shown, and which click handlers are attached.
package ui

import (
	"context"
	"sync"
	"sync/atomic"

	dErrors "landing/pkg/domain-errors"
)

// Element ids on the landing page.
const (
	CookieBanner   = "cookie-banner"
	AcceptCookies  = "accept-cookies"
	DecisionBanner = "global-cookie-message"
	HideDecision   = "hide-cookie-decision"
)

// Style is the pair of CSS properties toggled to show or hide an element.
type Style struct {
	Display    string
	Visibility string
}

var (
	shown  = Style{Display: "block", Visibility: "visible"}
	hidden = Style{Display: "none", Visibility: "hidden"}
)

// ClickHandler runs when an element is clicked.
type ClickHandler func(ctx context.Context) error

// Page is one rendered instance of the landing page. It is not safe for
// concurrent use; a page belongs to the goroutine serving its request.
type Page struct {
	styles   map[string]Style
	handlers map[string]ClickHandler

	loading atomic.Bool
	loaded  chan struct{}
	once    sync.Once
}

// NewPage returns a page containing ids, each with the given initial style.
func NewPage(initial map[string]Style) *Page {
	p := &Page{
		styles:   make(map[string]Style, len(initial)),
		handlers: make(map[string]ClickHandler),
		loaded:   make(chan struct{}),
	}
	for id, s := range initial {
		p.styles[id] = s
	}
	close(p.loaded)
	return p
}

// NewLandingPage returns the landing page with both banners hidden, which is
// their stylesheet default.
func NewLandingPage() *Page {
	return NewPage(map[string]Style{
		CookieBanner:   hidden,
		AcceptCookies:  {},
		DecisionBanner: hidden,
		HideDecision:   {},
	})
}

// StartLoading puts the page back into the loading state until MarkLoaded.
func (p *Page) StartLoading() {
	p.loading.Store(true)
	p.loaded = make(chan struct{})
	p.once = sync.Once{}
}

// MarkLoaded fires the content-loaded signal. Safe to call more than once.
func (p *Page) MarkLoaded() {
	p.once.Do(func() {
		p.loading.Store(false)
		close(p.loaded)
	})
}

func (p *Page) Loading() bool {
	return p.loading.Load()
}

func (p *Page) ContentLoaded() <-chan struct{} {
	return p.loaded
}

func (p *Page) ShowElement(id string) error {
	return p.setStyle(id, shown)
}

func (p *Page) HideElement(id string) error {
	return p.setStyle(id, hidden)
}

func (p *Page) setStyle(id string, s Style) error {
	if _, ok := p.styles[id]; !ok {
		return missing(id)
	}
	p.styles[id] = s
	return nil
}

// OnClick replaces the element's click handler.
func (p *Page) OnClick(id string, handler func(ctx context.Context) error) error {
	if _, ok := p.styles[id]; !ok {
		return missing(id)
	}
	p.handlers[id] = handler
	return nil
}

// Click dispatches a click on id. Clicking an element with no handler does nothing.
func (p *Page) Click(ctx context.Context, id string) error {
	if _, ok := p.styles[id]; !ok {
		return missing(id)
	}
	h, ok := p.handlers[id]
	if !ok {
		return nil
	}
	return h(ctx)
}

// HasHandler reports whether a click handler is attached to id.
func (p *Page) HasHandler(id string) bool {
	_, ok := p.handlers[id]
	return ok
}

// Visible reports whether id is currently displayed.
func (p *Page) Visible(id string) bool {
	s, ok := p.styles[id]
	return ok && s.Display != "none" && s.Visibility != "hidden"
}

// Style returns the current style of id.
func (p *Page) Style(id string) Style {
	return p.styles[id]
}

func missing(id string) error {
	return dErrors.New(dErrors.CodeNotFound, "element #"+id+" not found")
}
