package ui

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "landing/pkg/domain-errors"
)

func TestLandingPageDefaults(t *testing.T) {
	p := NewLandingPage()
	assert.False(t, p.Visible(CookieBanner))
	assert.False(t, p.Visible(DecisionBanner))
	assert.True(t, p.Visible(AcceptCookies))
	assert.True(t, p.Visible(HideDecision))
	assert.False(t, p.Loading())
}

func TestShowHide(t *testing.T) {
	p := NewLandingPage()
	require.NoError(t, p.ShowElement(CookieBanner))
	assert.Equal(t, Style{Display: "block", Visibility: "visible"}, p.Style(CookieBanner))

	require.NoError(t, p.HideElement(CookieBanner))
	assert.Equal(t, Style{Display: "none", Visibility: "hidden"}, p.Style(CookieBanner))
}

func TestMissingElement(t *testing.T) {
	p := NewPage(nil)
	assert.True(t, dErrors.Is(p.ShowElement("nope"), dErrors.CodeNotFound))
	assert.True(t, dErrors.Is(p.HideElement("nope"), dErrors.CodeNotFound))
	assert.True(t, dErrors.Is(p.OnClick("nope", nil), dErrors.CodeNotFound))
	assert.True(t, dErrors.Is(p.Click(context.Background(), "nope"), dErrors.CodeNotFound))
}

func TestClick(t *testing.T) {
	p := NewLandingPage()
	require.NoError(t, p.Click(context.Background(), AcceptCookies), "no handler is a no-op")

	calls := 0
	require.NoError(t, p.OnClick(AcceptCookies, func(context.Context) error {
		calls++
		return nil
	}))
	require.NoError(t, p.Click(context.Background(), AcceptCookies))
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	require.NoError(t, p.OnClick(AcceptCookies, func(context.Context) error { return boom }))
	assert.ErrorIs(t, p.Click(context.Background(), AcceptCookies), boom)
	assert.Equal(t, 1, calls, "handler is replaced, not chained")
}

func TestLifecycle(t *testing.T) {
	p := NewLandingPage()
	select {
	case <-p.ContentLoaded():
	default:
		t.Fatal("new page should already be loaded")
	}

	p.StartLoading()
	assert.True(t, p.Loading())
	select {
	case <-p.ContentLoaded():
		t.Fatal("loading page must not signal")
	default:
	}

	p.MarkLoaded()
	p.MarkLoaded()
	assert.False(t, p.Loading())
	<-p.ContentLoaded()
}
