package stepgraph_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/padstep/internal/fixture"
	"github.com/katalvlaran/padstep/step"
	"github.com/katalvlaran/padstep/stepgraph"
)

func TestBuildRejectsNilPad(t *testing.T) {
	_, err := stepgraph.Build(nil)
	assert.ErrorIs(t, err, stepgraph.ErrNilPad)
}

func TestBuildFourLaneSinglesProducesReachableNonEmptyGraph(t *testing.T) {
	g, err := stepgraph.Build(fixture.FourLaneSingles())
	require.NoError(t, err)
	require.Greater(t, g.NodeCount(), 0)
	require.Greater(t, g.LinkCount(), 0)

	require.GreaterOrEqual(t, g.StartingTierCount(), 1)
	start := g.StartingNodes(0)
	require.Len(t, start, 1)

	// The start node has at least one outgoing link, since a step graph with
	// a live foot always admits "do nothing to the other foot, move this
	// one" — the fixture's pad has no dead ends.
	out, err := g.OutLinks(start[0])
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestBuildReleaseOnlyFromHeld(t *testing.T) {
	g, err := stepgraph.Build(fixture.FourLaneSingles())
	require.NoError(t, err)

	start := g.StartingNodes(0)[0]
	out, err := g.OutLinks(start)
	require.NoError(t, err)

	for _, l := range out {
		for f := step.Left; f <= step.Right; f++ {
			for p := step.Heel; p <= step.Toe; p++ {
				if l.Detail.Portions[f][p].Valid && l.Detail.Portions[f][p].Action == step.Release {
					t.Fatalf("link %s releases from the all-resting start node", l.LinkID)
				}
			}
		}
	}
}

func TestBuildEveryNodeHasValidKey(t *testing.T) {
	g, err := stepgraph.Build(fixture.FourLaneSingles())
	require.NoError(t, err)

	for i := 0; i < g.NodeCount(); i++ {
		id := stepgraph.NodeID("n" + strconv.Itoa(i))
		_, err := g.NodeState(id)
		require.NoError(t, err, "node %s should be resolvable", id)
	}
}

func TestStatsReflectsCounts(t *testing.T) {
	g, err := stepgraph.Build(fixture.FourLaneSingles())
	require.NoError(t, err)

	stats := g.Stats()
	assert.Equal(t, g.NodeCount(), stats.Nodes)
	assert.Equal(t, g.LinkCount(), stats.Links)
}

func TestDescribeDoesNotPanicForUnknownNode(t *testing.T) {
	g, err := stepgraph.Build(fixture.FourLaneSingles())
	require.NoError(t, err)

	assert.Equal(t, "nowhere", g.Describe(stepgraph.NodeID("nowhere")))
}
