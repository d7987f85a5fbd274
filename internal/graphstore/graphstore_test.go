package graphstore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNodeRejectsEmptyAndDuplicate(t *testing.T) {
	g := NewGraph()
	require.ErrorIs(t, g.AddNode("", nil), ErrEmptyNodeID)

	require.NoError(t, g.AddNode("n0", "left-resting"))
	assert.ErrorIs(t, g.AddNode("n0", "again"), ErrDuplicateNode)
	assert.True(t, g.HasNode("n0"))
	assert.Equal(t, 1, g.NodeCount())
}

func TestAddLinkRequiresKnownEndpoints(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddNode("n0", nil))

	_, err := g.AddLink("n0", "n1", nil)
	assert.ErrorIs(t, err, ErrNodeNotFound)

	require.NoError(t, g.AddNode("n1", nil))
	id, err := g.AddLink("n0", "n1", "same-arrow")
	require.NoError(t, err)
	assert.Equal(t, LinkID("l0"), id)

	id2, err := g.AddLink("n0", "n1", "new-arrow")
	require.NoError(t, err)
	assert.Equal(t, LinkID("l1"), id2, "multigraph: a second parallel link gets its own ID")
	assert.Equal(t, 2, g.LinkCount())
}

func TestOutLinksSortedAndScoped(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddNode("a", nil))
	require.NoError(t, g.AddNode("b", nil))
	require.NoError(t, g.AddNode("c", nil))
	_, _ = g.AddLink("a", "b", nil)
	_, _ = g.AddLink("a", "c", nil)
	_, _ = g.AddLink("b", "c", nil)

	out, err := g.OutLinks("a")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, LinkID("l0"), out[0].ID)
	assert.Equal(t, LinkID("l1"), out[1].ID)

	_, err = g.OutLinks("missing")
	assert.True(t, errors.Is(err, ErrNodeNotFound))
}

func TestNodesAndLinksDeterministicOrder(t *testing.T) {
	g := NewGraph()
	for _, id := range []NodeID{"n3", "n1", "n2"} {
		require.NoError(t, g.AddNode(id, nil))
	}
	nodes := g.Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, NodeID("n1"), nodes[0].ID)
	assert.Equal(t, NodeID("n2"), nodes[1].ID)
	assert.Equal(t, NodeID("n3"), nodes[2].ID)
}
