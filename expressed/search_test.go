package expressed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/padstep/chart"
	"github.com/katalvlaran/padstep/cost"
	"github.com/katalvlaran/padstep/expressed"
	"github.com/katalvlaran/padstep/internal/fixture"
	"github.com/katalvlaran/padstep/stepgraph"
)

func buildRows(lanes ...int) []chart.Row {
	events := make([]chart.Event, len(lanes))
	for i, l := range lanes {
		events[i] = chart.Event{Lane: l, Position: int64(i), Kind: chart.Tap}
	}
	rows := chart.Rows(events)

	return rows
}

func TestSearchTrivialAlternationCostsZero(t *testing.T) {
	p := fixture.FourLaneSingles()
	g, err := stepgraph.Build(p)
	require.NoError(t, err)

	rows := buildRows(0, 3, 0, 3)
	out, err := expressed.Search(context.Background(), rows, g, cost.DefaultExpressedConfig())
	require.NoError(t, err)
	require.Len(t, out.Links, 4)
	assert.Equal(t, 0, out.TotalCost(func(l chart.GraphLinkInstance) int { return l.Cost }))
}

func TestSearchReturnsNoValidAssignmentForUnreachableLane(t *testing.T) {
	p := fixture.FourLaneSingles()
	g, err := stepgraph.Build(p)
	require.NoError(t, err)

	rows := buildRows(99)
	_, err = expressed.Search(context.Background(), rows, g, cost.DefaultExpressedConfig())
	require.Error(t, err)
	var nva *expressed.NoValidAssignmentError
	assert.ErrorAs(t, err, &nva)
}

func TestSearchCancellationReturnsPartial(t *testing.T) {
	p := fixture.FourLaneSingles()
	g, err := stepgraph.Build(p)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows := buildRows(0, 3)
	out, err := expressed.Search(ctx, rows, g, cost.DefaultExpressedConfig())
	assert.ErrorIs(t, err, expressed.ErrCancelled)
	assert.NotNil(t, out)
}
