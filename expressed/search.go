// Package expressed implements the expressed-chart search (C5): assigning
// each row of an input chart event stream to a graph link, producing a
// sequence of GraphLinkInstances that reconstructs which feet played which
// arrows (spec §4.3).
package expressed

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/katalvlaran/padstep/chart"
	"github.com/katalvlaran/padstep/cost"
	"github.com/katalvlaran/padstep/internal/rng"
	"github.com/katalvlaran/padstep/step"
	"github.com/katalvlaran/padstep/stepgraph"
)

// Sentinel errors (spec §6 "Error codes surfaced at the API boundary").
// Both alias chart's own vars of the same name, since expressed already
// depends on chart and chart can't depend back — this keeps a single
// errors.Is target regardless of which package a caller imports.
var (
	// ErrNoValidAssignment is what NoValidAssignmentError unwraps to; the
	// row index the search could not extend past is its RowIndex field.
	ErrNoValidAssignment = chart.ErrNoValidAssignment
	ErrCancelled         = chart.ErrCancelled
)

// NoValidAssignmentError carries the failing row index and the lanes the
// search was trying to cover there (spec §4.3 "Failure").
type NoValidAssignmentError struct {
	RowIndex int
	Lanes    []int
}

func (e *NoValidAssignmentError) Error() string {
	return fmt.Sprintf("expressed: no valid assignment at row %d (lanes %v)", e.RowIndex, e.Lanes)
}

func (e *NoValidAssignmentError) Unwrap() error { return ErrNoValidAssignment }

// searchNode is one frontier entry: the graph node reached, the cumulative
// cost to reach it, and a back-pointer chain for reconstructing the path.
type searchNode struct {
	nodeID      stepgraph.NodeID
	cost        int
	orientation step.Orientation
	parent      *searchNode
	link        *chart.GraphLinkInstance // the link that produced this node, nil at the seed.
}

// Search runs the iterative best-cost search described in spec §4.3 over
// rows, against graph g, using the weight table in cfg. ctx is checked for
// cancellation once per row (spec §5 "cooperative check-point").
func Search(ctx context.Context, rows []chart.Row, g *stepgraph.Graph, cfg cost.ExpressedConfig) (*chart.ExpressedChart, error) {
	method := resolveBracketMethod(rows, g, cfg)

	frontier := seedFrontier(g)
	if len(frontier) == 0 {
		return nil, &NoValidAssignmentError{RowIndex: -1}
	}

	for rowIdx, row := range rows {
		select {
		case <-ctx.Done():
			return partialChart(bestOf(frontier)), ErrCancelled
		default:
		}

		releases, mines, steps := row.Split()
		mineIndicated := len(mines) > 0

		var r *rand.Rand
		if cfg.RandomizeTies {
			r = rng.FromSeed(rng.DeriveSeed(cfg.Seed, uint64(rowIdx)))
		}

		if len(releases) > 0 {
			next, err := expand(frontier, g, row.Position, lanesOf(releases), instancesOf(releases), true, false, method, mineIndicated, r)
			if err != nil {
				return nil, &NoValidAssignmentError{RowIndex: rowIdx, Lanes: lanesOf(releases)}
			}
			frontier = next
		}
		if len(steps) > 0 {
			next, err := expand(frontier, g, row.Position, lanesOf(steps), instancesOf(steps), false, rowIdx == 0, method, mineIndicated, r)
			if err != nil {
				return nil, &NoValidAssignmentError{RowIndex: rowIdx, Lanes: lanesOf(steps)}
			}
			frontier = next
		}
	}

	return partialChart(bestOf(frontier)), nil
}

func lanesOf(events []chart.Event) []int {
	lanes := make([]int, len(events))
	for i, e := range events {
		lanes[i] = e.Lane
	}
	sort.Ints(lanes)

	return lanes
}

// instancesOf maps each event's lane to the chart-annotation it carries
// (spec §3 "Expressed chart" preserved instance annotations), so a bracket
// or jump can apply a different annotation per acting lane within the same
// row.
func instancesOf(events []chart.Event) map[int]step.InstanceType {
	instances := make(map[int]step.InstanceType, len(events))
	for _, e := range events {
		instances[e.Lane] = instanceOf(e.Kind)
	}

	return instances
}

// instanceOf maps a chart event kind to the kinematics-neutral annotation it
// carries forward onto the expressed chart (spec §3).
func instanceOf(k chart.EventKind) step.InstanceType {
	switch k {
	case chart.RollEvent:
		return step.Roll
	case chart.Fake:
		return step.Fake
	case chart.Lift:
		return step.Lift
	default:
		return step.Default
	}
}

func seedFrontier(g *stepgraph.Graph) map[stepgraph.NodeID]*searchNode {
	frontier := make(map[stepgraph.NodeID]*searchNode)
	for tier := 0; tier < g.StartingTierCount(); tier++ {
		for _, id := range g.StartingNodes(tier) {
			if _, exists := frontier[id]; !exists {
				frontier[id] = &searchNode{nodeID: id, cost: tier} // later tiers break ties worse, cheaply.
			}
		}
	}

	return frontier
}

// expand advances every frontier node by one link whose acted-on lanes
// exactly match wantLanes (a shape-compatible link, spec §4.3 "Row
// construction"), applying dominance pruning by resulting node. When r is
// non-nil, both the frontier and each node's outgoing links are visited in
// an r-shuffled order (spec §5 "random shuffle of equally-weighted
// successor indices"), so a genuine tie in better() is broken reproducibly
// from r's seed rather than by Go's unspecified map-iteration order.
func expand(frontier map[stepgraph.NodeID]*searchNode, g *stepgraph.Graph, position int64, wantLanes []int, instances map[int]step.InstanceType, isRelease, isFirstStep bool, method cost.BracketParsingMethod, mineIndicated bool, r *rand.Rand) (map[stepgraph.NodeID]*searchNode, error) {
	next := make(map[stepgraph.NodeID]*searchNode)

	for _, from := range orderedFrontier(frontier, r) {
		outs, err := g.OutLinks(from.nodeID)
		if err != nil {
			continue
		}
		fromState, err := g.NodeState(from.nodeID)
		if err != nil {
			continue
		}
		if r != nil {
			outs = shuffledOutLinks(outs, r)
		}
		bracketAlt := false // a bracket link from this node covers the same lanes
		if method == cost.Aggressive && !isRelease {
			for _, o := range outs {
				if o.Detail.IsRelease() || !o.Detail.InvolvesBracket() {
					continue
				}
				if oState, err := g.NodeState(o.To); err == nil && sameLanes(actingLanes(o.Detail, oState), wantLanes) {
					bracketAlt = true
					break
				}
			}
		}
		for _, out := range outs {
			if out.Detail.IsRelease() != isRelease {
				continue
			}
			toState, err := g.NodeState(out.To)
			if err != nil {
				continue
			}
			lanes := actingLanes(out.Detail, toState)
			if !sameLanes(lanes, wantLanes) {
				continue
			}

			thisFootHeld, otherHeld := heldSituation(out.Detail, fromState)
			sit := cost.Situation{
				OtherFootHeldPortions: otherHeld,
				ThisFootHeld:          thisFootHeld,
				MineIndicated:         mineIndicated,
				IsFirstStep:           isFirstStep,
				ExitsJump:             exitsJump(fromState),
				IsDoubleStep:          isDoubleStep(out.Detail, from),
				IsTripleStep:          isTripleStep(out.Detail, from),
			}
			linkCost := cost.TransitionCost(out.Detail.Posture, out.Detail.InvolvesBracket(), hasFootSwap(out.Detail), isRelease, sit, method)
			if out.Detail.IsJump() {
				linkCost += cost.JumpPenalty(method, bracketAlt)
			}
			total := from.cost + linkCost

			link := buildLinkInstance(position, out, toState, mineIndicated, instances, g)
			link.Cost = linkCost
			cand := &searchNode{
				nodeID:      out.To,
				cost:        total,
				orientation: toState.Orientation,
				parent:      from,
				link:        link,
			}

			existing, ok := next[out.To]
			if !ok || better(cand, existing) {
				next[out.To] = cand
			}
		}
	}

	if len(next) == 0 {
		return nil, fmt.Errorf("%w", ErrNoValidAssignment)
	}

	return next, nil
}

// orderedFrontier returns frontier's nodes in a stable base order (sorted by
// ID), then Fisher-Yates shuffled by r when r is non-nil.
func orderedFrontier(frontier map[stepgraph.NodeID]*searchNode, r *rand.Rand) []*searchNode {
	nodes := make([]*searchNode, 0, len(frontier))
	for _, n := range frontier {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].nodeID < nodes[j].nodeID })

	if r != nil {
		idx := make([]int, len(nodes))
		for i := range idx {
			idx[i] = i
		}
		rng.ShuffleEqualCost(r, idx)
		shuffled := make([]*searchNode, len(nodes))
		for i, j := range idx {
			shuffled[i] = nodes[j]
		}
		return shuffled
	}

	return nodes
}

// shuffledOutLinks returns outs reordered by r, so which equally-weighted
// successor link ends up as the map-insertion "first" one (and thus wins a
// true tie in better()) is drawn from r rather than the graph's storage
// order.
func shuffledOutLinks(outs []stepgraph.OutLinkInfo, r *rand.Rand) []stepgraph.OutLinkInfo {
	idx := make([]int, len(outs))
	for i := range idx {
		idx[i] = i
	}
	rng.ShuffleEqualCost(r, idx)
	shuffled := make([]stepgraph.OutLinkInfo, len(outs))
	for i, j := range idx {
		shuffled[i] = outs[j]
	}

	return shuffled
}

// better implements spec §4.3 tie-breaking: lower cost wins; ties broken by
// lower orientation tier, then by earlier-sorted step kind.
func better(a, b *searchNode) bool {
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	at, bt := orientationTierOf(a), orientationTierOf(b)
	if at != bt {
		return at < bt
	}

	return lowestKindID(a.link) < lowestKindID(b.link)
}

func orientationTierOf(n *searchNode) int {
	return n.orientation.Tier()
}

func lowestKindID(l *chart.GraphLinkInstance) int {
	best := -1
	if l == nil {
		return best
	}
	for f := 0; f < 2; f++ {
		for p := 0; p < 2; p++ {
			pa := l.Portions[f][p]
			if pa.Acts && (best == -1 || pa.KindID < best) {
				best = pa.KindID
			}
		}
	}

	return best
}

func actingLanes(d stepgraph.LinkDetail, toState stepgraph.NodeState) []int {
	seen := map[int]bool{}
	var lanes []int
	for f := step.Left; f <= step.Right; f++ {
		for p := step.Heel; p <= step.Toe; p++ {
			if !d.Portions[f][p].Valid {
				continue
			}
			lane := toState.Feet[f][p].Lane
			if !seen[lane] {
				seen[lane] = true
				lanes = append(lanes, lane)
			}
		}
	}
	sort.Ints(lanes)

	return lanes
}

func sameLanes(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// actingSingleFoot reports the single foot acting on d, if exactly one foot
// acts and it isn't a release.
func actingSingleFoot(d stepgraph.LinkDetail) (step.Foot, bool) {
	if d.IsRelease() {
		return 0, false
	}
	left := d.Portions[step.Left][step.Heel].Valid || d.Portions[step.Left][step.Toe].Valid
	right := d.Portions[step.Right][step.Heel].Valid || d.Portions[step.Right][step.Toe].Valid
	switch {
	case left && !right:
		return step.Left, true
	case right && !left:
		return step.Right, true
	default:
		return 0, false
	}
}

// actingSingleFootOfInstance is actingSingleFoot's equivalent over an
// already-built chart.GraphLinkInstance, used to inspect a prior step on the
// search path (which only carries the chart-facing instance, not the raw
// stepgraph.LinkDetail).
func actingSingleFootOfInstance(l *chart.GraphLinkInstance) (step.Foot, bool) {
	if l == nil {
		return 0, false
	}
	left := l.Portions[step.Left][step.Heel].Acts || l.Portions[step.Left][step.Toe].Acts
	right := l.Portions[step.Right][step.Heel].Acts || l.Portions[step.Right][step.Toe].Acts
	leftRelease := l.Portions[step.Left][step.Heel].Action == step.Release || l.Portions[step.Left][step.Toe].Action == step.Release
	rightRelease := l.Portions[step.Right][step.Heel].Action == step.Release || l.Portions[step.Right][step.Toe].Action == step.Release
	switch {
	case left && !right && !leftRelease:
		return step.Left, true
	case right && !left && !rightRelease:
		return step.Right, true
	default:
		return 0, false
	}
}

// isDoubleStep reports whether this link and the link that produced from
// (the previous row's step) act with the same single foot — the spec's
// "same foot twice in a row" (spec §4.2).
func isDoubleStep(d stepgraph.LinkDetail, from *searchNode) bool {
	if from == nil {
		return false
	}
	thisFoot, thisOK := actingSingleFoot(d)
	prevFoot, prevOK := actingSingleFootOfInstance(from.link)

	return thisOK && prevOK && thisFoot == prevFoot
}

// isTripleStep reports whether this link extends a double step: the same
// single foot acting three rows in a row (spec §4.2 "triple step").
func isTripleStep(d stepgraph.LinkDetail, from *searchNode) bool {
	if from == nil || from.parent == nil {
		return false
	}
	if !isDoubleStep(d, from) {
		return false
	}
	prevFoot, prevOK := actingSingleFootOfInstance(from.link)
	grandFoot, grandOK := actingSingleFootOfInstance(from.parent.link)

	return prevOK && grandOK && prevFoot == grandFoot
}

// heldSituation derives the hold-state axes spec §4.2 indexes the cost table
// by, from the graph state the search was in immediately before this link
// (fromState): whether the acting foot itself already carried a held
// portion, and how many of the non-acting foot's portions are held.
func heldSituation(d stepgraph.LinkDetail, fromState stepgraph.NodeState) (thisFootHeld bool, otherFootHeldPortions int) {
	foot, ok := actingSingleFoot(d)
	if !ok {
		return false, 0
	}
	other := step.Right
	if foot == step.Right {
		other = step.Left
	}
	thisFootHeld = fromState.Feet[foot][step.Heel].State == step.Held || fromState.Feet[foot][step.Toe].State == step.Held
	for p := step.Heel; p <= step.Toe; p++ {
		if fromState.Feet[other][p].State == step.Held {
			otherFootHeldPortions++
		}
	}

	return thisFootHeld, otherFootHeldPortions
}

// exitsJump reports whether fromState has both feet carrying a held portion
// (a jump hold in effect immediately before this link, spec §4.2 "a step
// exiting a jump"). TransitionCost only consults this outside its isRelease
// short-circuit, so a release out of a jump still costs 0 as required.
func exitsJump(fromState stepgraph.NodeState) bool {
	leftHeld := fromState.Feet[step.Left][step.Heel].State == step.Held || fromState.Feet[step.Left][step.Toe].State == step.Held
	rightHeld := fromState.Feet[step.Right][step.Heel].State == step.Held || fromState.Feet[step.Right][step.Toe].State == step.Held

	return leftHeld && rightHeld
}

func hasFootSwap(d stepgraph.LinkDetail) bool {
	for f := step.Left; f <= step.Right; f++ {
		for p := step.Heel; p <= step.Toe; p++ {
			if d.IsFootSwap(f, p) {
				return true
			}
		}
	}

	return false
}

func buildLinkInstance(position int64, out stepgraph.OutLinkInfo, toState stepgraph.NodeState, mineIndicated bool, instances map[int]step.InstanceType, g *stepgraph.Graph) *chart.GraphLinkInstance {
	inst := &chart.GraphLinkInstance{
		RowPosition:   position,
		LinkID:        string(out.LinkID),
		MineIndicated: mineIndicated,
		Result:        chart.GraphNodeInstance{NodeID: string(out.To), Label: g.Describe(out.To)},
	}
	for f := step.Left; f <= step.Right; f++ {
		for p := step.Heel; p <= step.Toe; p++ {
			lp := out.Detail.Portions[f][p]
			if !lp.Valid {
				continue
			}
			lane := toState.Feet[f][p].Lane
			inst.Portions[f][p] = chart.PortionAnnotation{
				Acts:       true,
				KindID:     lp.KindID,
				Action:     lp.Action,
				Instance:   instances[lane],
				SourceLane: lane,
			}
		}
	}

	return inst
}

func bestOf(frontier map[stepgraph.NodeID]*searchNode) *searchNode {
	var best *searchNode
	for _, n := range orderedFrontier(frontier, nil) {
		if best == nil || better(n, best) {
			best = n
		}
	}

	return best
}

func partialChart(n *searchNode) *chart.ExpressedChart {
	var links []chart.GraphLinkInstance
	for cur := n; cur != nil && cur.link != nil; cur = cur.parent {
		links = append([]chart.GraphLinkInstance{*cur.link}, links...)
	}

	return &chart.ExpressedChart{Links: links}
}
