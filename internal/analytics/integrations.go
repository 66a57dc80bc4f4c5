package analytics

import "time"

// Integration installs one tagging library's commands into a data layer.
type Integration interface {
	Name() string
	Install(layer *DataLayer, now time.Time)
}

// GTag is a gtag.js property. Its config command sends the page_view hit.
type GTag struct {
	MeasurementID   string
	AnonymizeIP     bool
	AllowAdFeatures bool
}

func (g GTag) Name() string { return "gtag" }

func (g GTag) Install(layer *DataLayer, now time.Time) {
	layer.Push("gtag", "js", now.UTC().Format(time.RFC3339))
	layer.Push("gtag", "config", g.MeasurementID, map[string]any{
		"anonymize_ip":    g.AnonymizeIP,
		"allowAdFeatures": g.AllowAdFeatures,
	})
}

// SharedTracker is a named analytics.js tracker with cross-domain linking,
// sending a pageview on both the default and the named tracker.
type SharedTracker struct {
	TrackingID      string
	TrackerName     string
	LinkerDomains   []string
	AnonymizeIP     bool
	AllowAdFeatures bool
}

func (s SharedTracker) Name() string { return "ga" }

func (s SharedTracker) Install(layer *DataLayer, _ time.Time) {
	n := s.TrackerName
	layer.Push("ga", "create", s.TrackingID, "auto", n, map[string]any{"allowLinker": true})
	layer.Push("ga", n+".require", "linker")
	layer.Push("ga", n+".set", "anonymizeIp", s.AnonymizeIP)
	layer.Push("ga", n+".set", "allowAdFeatures", s.AllowAdFeatures)
	layer.Push("ga", n+".linker:autoLink", s.LinkerDomains)
	layer.Push("ga", "send", "pageview")
	layer.Push("ga", n+".send", "pageview")
}

// DefaultIntegrations are the dashboard's own property and the shared
// GOV.UK tracker. Both anonymise IPs and keep ad features off.
func DefaultIntegrations() []Integration {
	return []Integration{
		GTag{
			MeasurementID:   "UA-161400643-2",
			AnonymizeIP:     true,
			AllowAdFeatures: false,
		},
		SharedTracker{
			TrackingID:      "UA-145652997-1",
			TrackerName:     "govuk_shared",
			LinkerDomains:   []string{"www.gov.uk"},
			AnonymizeIP:     true,
			AllowAdFeatures: false,
		},
	}
}
