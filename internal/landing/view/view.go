// Package view renders the landing page.
package view

import (
	"bytes"
	"embed"
	"html/template"

	"landing/internal/analytics"
	"landing/internal/ui"
	dErrors "landing/pkg/domain-errors"
)

//go:embed templates/*.html
var templateFS embed.FS

var landingTemplate = template.Must(template.ParseFS(templateFS, "templates/landing.html"))

// Landing is the data rendered into the landing page.
type Landing struct {
	CookieBanner   ui.Style
	DecisionBanner ui.Style
	Commands       []analytics.Command

	AcceptAction string
	HideAction   string
}

// FromPage captures the page's banner state and any analytics commands.
func FromPage(page *ui.Page, layer *analytics.DataLayer) Landing {
	l := Landing{
		CookieBanner:   page.Style(ui.CookieBanner),
		DecisionBanner: page.Style(ui.DecisionBanner),
		AcceptAction:   "/cookies/accept",
		HideAction:     "/cookies/hide-decision",
	}
	if layer != nil {
		l.Commands = layer.Commands()
	}
	return l
}

// Render executes the landing template.
func Render(l Landing) ([]byte, error) {
	var buf bytes.Buffer
	if err := landingTemplate.Execute(&buf, l); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "render landing page")
	}
	return buf.Bytes(), nil
}
