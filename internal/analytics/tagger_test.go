package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landing/pkg/requestcontext"
)

type countingRecorder struct {
	counts map[string]int
}

func (c *countingRecorder) IncrementAnalyticsInitialized(integration string) {
	if c.counts == nil {
		c.counts = map[string]int{}
	}
	c.counts[integration]++
}

func TestTaggerInitializesDefaultIntegrations(t *testing.T) {
	now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	layer := NewDataLayer()
	rec := &countingRecorder{}
	tagger := NewTagger(layer, DefaultIntegrations(), WithRecorder(rec))

	require.False(t, tagger.Initialized())
	tagger.Initialize(ctx)
	require.True(t, tagger.Initialized())

	cmds := layer.Commands()
	require.Len(t, cmds, 9)

	assert.Equal(t, Command{Target: "gtag", Args: []any{"js", "2026-10-19T08:00:00Z"}}, cmds[0])
	assert.Equal(t, Command{Target: "gtag", Args: []any{"config", "UA-161400643-2", map[string]any{
		"anonymize_ip":    true,
		"allowAdFeatures": false,
	}}}, cmds[1])
	assert.Equal(t, Command{Target: "ga", Args: []any{"create", "UA-145652997-1", "auto", "govuk_shared", map[string]any{"allowLinker": true}}}, cmds[2])
	assert.Equal(t, Command{Target: "ga", Args: []any{"govuk_shared.require", "linker"}}, cmds[3])
	assert.Equal(t, Command{Target: "ga", Args: []any{"govuk_shared.set", "anonymizeIp", true}}, cmds[4])
	assert.Equal(t, Command{Target: "ga", Args: []any{"govuk_shared.set", "allowAdFeatures", false}}, cmds[5])
	assert.Equal(t, Command{Target: "ga", Args: []any{"govuk_shared.linker:autoLink", []string{"www.gov.uk"}}}, cmds[6])
	assert.Equal(t, Command{Target: "ga", Args: []any{"send", "pageview"}}, cmds[7])
	assert.Equal(t, Command{Target: "ga", Args: []any{"govuk_shared.send", "pageview"}}, cmds[8])

	assert.Equal(t, map[string]int{"gtag": 1, "ga": 1}, rec.counts)
}

func TestTaggerRunsOnce(t *testing.T) {
	layer := NewDataLayer()
	tagger := NewTagger(layer, DefaultIntegrations())

	tagger.Initialize(context.Background())
	first := layer.Len()
	tagger.Initialize(context.Background())

	assert.Equal(t, first, layer.Len())
}

func TestDataLayerCommandsIsACopy(t *testing.T) {
	layer := NewDataLayer()
	layer.Push("gtag", "js")
	cmds := layer.Commands()
	cmds[0].Target = "changed"
	assert.Equal(t, "gtag", layer.Commands()[0].Target)
}
