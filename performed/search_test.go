package performed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/padstep/chart"
	"github.com/katalvlaran/padstep/cost"
	"github.com/katalvlaran/padstep/expressed"
	"github.com/katalvlaran/padstep/internal/fixture"
	"github.com/katalvlaran/padstep/performed"
	"github.com/katalvlaran/padstep/stepgraph"
)

func expressedFourLaneAlternation(t *testing.T) (*chart.ExpressedChart, *stepgraph.Graph) {
	t.Helper()
	p := fixture.FourLaneSingles()
	g, err := stepgraph.Build(p)
	require.NoError(t, err)

	events := []chart.Event{
		{Lane: 0, Position: 0, Kind: chart.Tap},
		{Lane: 3, Position: 1, Kind: chart.Tap},
	}
	rows := chart.Rows(events)
	out, err := expressed.Search(context.Background(), rows, g, cost.DefaultExpressedConfig())
	require.NoError(t, err)

	return out, g
}

func TestPerformedSearchReplaysOntoSamePad(t *testing.T) {
	src, g := expressedFourLaneAlternation(t)

	out, err := performed.Search(context.Background(), src, g, cost.PerformedConfig{})
	require.NoError(t, err)
	assert.Len(t, out.Steps, len(src.Links))
}

func TestPerformedSearchCancellationReturnsPartial(t *testing.T) {
	src, g := expressedFourLaneAlternation(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := performed.Search(ctx, src, g, cost.PerformedConfig{})
	assert.ErrorIs(t, err, performed.ErrCancelled)
	assert.NotNil(t, out)
}

func TestPerformedSearchReplaysOntoCrossPad(t *testing.T) {
	src, _ := expressedFourLaneAlternation(t)

	target, err := stepgraph.Build(fixture.EightLaneDoubles())
	require.NoError(t, err)

	out, err := performed.Search(context.Background(), src, target, cost.PerformedConfig{})
	require.NoError(t, err)
	assert.Len(t, out.Steps, len(src.Links))
}
