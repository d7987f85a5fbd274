package stepgraph

import (
	"fmt"

	"github.com/katalvlaran/padstep/internal/graphstore"
	"github.com/katalvlaran/padstep/pad"
)

// Graph is the built, immutable step graph (spec §3 Lifecycle: "built once
// per pad and thereafter read-only, safe to share across searches").
type Graph struct {
	store *graphstore.Graph
	pad   *pad.Pad

	// byKey interns NodeState -> NodeID during Build; kept after Build
	// returns so Mirror/Flip-aware callers (none yet, reserved for a future
	// symmetry-folding optimization) can look a state back up by key.
	byKey map[string]graphstore.NodeID

	// startTiers[i] holds, for tier i, the NodeID seeded from each of that
	// tier's StartPosition entries, in the same order (spec §4.4 "first
	// expressed step is tried from each tier in order").
	startTiers [][]graphstore.NodeID
}

// Pad returns the pad this graph was built from.
func (g *Graph) Pad() *pad.Pad { return g.pad }

// NodeCount returns the number of interned nodes.
func (g *Graph) NodeCount() int { return g.store.NodeCount() }

// LinkCount returns the number of links.
func (g *Graph) LinkCount() int { return g.store.LinkCount() }

// Stats is a small diagnostic summary (SPEC_FULL.md "Graph statistics").
type Stats struct {
	Nodes            int
	Links            int
	AverageOutDegree float64
}

// Stats computes NodeCount/LinkCount/AverageOutDegree in one pass.
func (g *Graph) Stats() Stats {
	n := g.NodeCount()
	l := g.LinkCount()
	avg := 0.0
	if n > 0 {
		avg = float64(l) / float64(n)
	}

	return Stats{Nodes: n, Links: l, AverageOutDegree: avg}
}

// NodeState returns the foot-state payload of node id.
func (g *Graph) NodeState(id graphstore.NodeID) (NodeState, error) {
	n, err := g.store.GetNode(id)
	if err != nil {
		return NodeState{}, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}

	return n.Payload.(NodeState), nil
}

// LinkDetail returns the step-kind payload of link id.
func (g *Graph) LinkDetail(id graphstore.LinkID) (LinkDetail, error) {
	l, err := g.store.GetLink(id)
	if err != nil {
		return LinkDetail{}, fmt.Errorf("%w: %s", ErrUnknownLink, id)
	}

	return l.Payload.(LinkDetail), nil
}

// OutLinkInfo bundles one outgoing link's ID, payload and destination,
// sparing callers three separate lookups per candidate.
type OutLinkInfo struct {
	LinkID LinkID
	Detail LinkDetail
	To     graphstore.NodeID
}

// LinkID re-exports graphstore's link identifier so stepgraph's public API
// does not force every caller to import internal/graphstore directly.
type LinkID = graphstore.LinkID

// NodeID re-exports graphstore's node identifier.
type NodeID = graphstore.NodeID

// OutLinks returns every outgoing link of node id, sorted by LinkID
// ascending (deterministic, matching graphstore's own ordering guarantee).
func (g *Graph) OutLinks(id NodeID) ([]OutLinkInfo, error) {
	links, err := g.store.OutLinks(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}

	out := make([]OutLinkInfo, len(links))
	for i, l := range links {
		out[i] = OutLinkInfo{LinkID: l.ID, Detail: l.Payload.(LinkDetail), To: l.To}
	}

	return out, nil
}

// StartingTierCount returns the number of starting-position tiers carried
// over from the pad.
func (g *Graph) StartingTierCount() int { return len(g.startTiers) }

// StartingNodes returns the seeded node IDs for starting tier i, in the same
// order as pad.Pad.StartingTier(i).
func (g *Graph) StartingNodes(i int) []NodeID { return g.startTiers[i] }

// Describe renders a short human-readable label for node id, used by
// chart.GraphNodeInstance.Label for diagnostics without forcing every
// consumer to hold a live *Graph.
func (g *Graph) Describe(id NodeID) string {
	s, err := g.NodeState(id)
	if err != nil {
		return string(id)
	}

	return fmt.Sprintf(
		"L(%d,%d)/R(%d,%d) heel=%d,%d toe=%d,%d %s",
		s.Feet[0][0].Lane, s.Feet[0][1].Lane, s.Feet[1][0].Lane, s.Feet[1][1].Lane,
		s.Feet[0][0].State, s.Feet[1][0].State, s.Feet[0][1].State, s.Feet[1][1].State,
		s.Orientation,
	)
}
