package chart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/padstep/chart"
	"github.com/katalvlaran/padstep/internal/fixture"
)

func TestRowsGroupsAndSortsByPosition(t *testing.T) {
	events := []chart.Event{
		{Lane: 3, Position: 10, Kind: chart.Tap},
		{Lane: 0, Position: 0, Kind: chart.Tap},
		{Lane: 1, Position: 10, Kind: chart.Tap},
	}
	rows := chart.Rows(events)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(0), rows[0].Position)
	assert.Equal(t, int64(10), rows[1].Position)
	require.Len(t, rows[1].Events, 2)
	assert.Equal(t, 1, rows[1].Events[0].Lane)
	assert.Equal(t, 3, rows[1].Events[1].Lane)
}

func TestRowSplitPartitionsByKind(t *testing.T) {
	row := chart.Row{Events: []chart.Event{
		{Lane: 0, Kind: chart.Tap},
		{Lane: 1, Kind: chart.Mine},
		{Lane: 2, Kind: chart.HoldEnd},
	}}
	releases, mines, steps := row.Split()
	require.Len(t, releases, 1)
	require.Len(t, mines, 1)
	require.Len(t, steps, 1)
	assert.Equal(t, 2, releases[0].Lane)
	assert.Equal(t, 1, mines[0].Lane)
	assert.Equal(t, 0, steps[0].Lane)
}

func TestMirrorRemapsLanesOnly(t *testing.T) {
	p := fixture.FourLaneSingles()
	events := []chart.Event{{Lane: 0, Position: 5, Kind: chart.Tap}}
	mirrored := chart.Mirror(events, p)
	require.Len(t, mirrored, 1)
	assert.Equal(t, 3, mirrored[0].Lane)
	assert.Equal(t, int64(5), mirrored[0].Position)
	assert.Equal(t, chart.Tap, mirrored[0].Kind)
}
