// Package performed implements the performed-chart search (C6): replaying
// an expressed chart built against one pad onto a (possibly different)
// target pad's step graph, preserving step-kind shape while minimising
// shaping cost (spec §4.4).
package performed

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/padstep/chart"
	"github.com/katalvlaran/padstep/cost"
	"github.com/katalvlaran/padstep/pad"
	"github.com/katalvlaran/padstep/step"
	"github.com/katalvlaran/padstep/stepgraph"
)

// Sentinel errors (spec §6). Both alias chart's own vars of the same name,
// since performed already depends on chart and chart can't depend back.
var (
	ErrNoTargetMapping = chart.ErrNoTargetMapping
	ErrCancelled       = chart.ErrCancelled
)

// NoTargetMappingError carries the expressed-chart row index that has no
// feasible target-pad link, even after bracket-form degradation
// (spec §4.4 "Failure").
type NoTargetMappingError struct {
	RowIndex int
}

func (e *NoTargetMappingError) Error() string {
	return fmt.Sprintf("performed: no target mapping at row %d", e.RowIndex)
}

func (e *NoTargetMappingError) Unwrap() error { return ErrNoTargetMapping }

// footHistory is the per-foot state a search node carries to compute every
// shaping cost in O(1) per extension (spec §4.4 "State carried on search
// nodes").
type footHistory struct {
	lastLane int
	lastTime float64
	haveLast bool
}

type pNode struct {
	nodeID stepgraph.NodeID
	cost   float64
	parent *pNode
	step   *chart.PerformedStep

	feet [2]footHistory

	lateralWindow []float64 // ring-ish buffer of recent lateral midpoints, capped at patternLength.
	inwardCount   int
	outwardCount  int
	totalSteps    int
	laneHistogram map[int]int
}

// Search replays src onto target's graph, row by row, minimising cumulative
// shaping cost under cfg (spec §4.4).
func Search(ctx context.Context, src *chart.ExpressedChart, target *stepgraph.Graph, cfg cost.PerformedConfig) (*chart.PerformedChart, error) {
	frontier := seedFrontier(target)
	if len(frontier) == 0 {
		return nil, &NoTargetMappingError{RowIndex: -1}
	}

	for rowIdx, link := range src.Links {
		select {
		case <-ctx.Done():
			return partial(best(frontier)), ErrCancelled
		default:
		}

		next, err := expandRow(frontier, target, link, float64(rowIdx), cfg)
		if err != nil {
			return nil, &NoTargetMappingError{RowIndex: rowIdx}
		}
		frontier = next
	}

	return partial(best(frontier)), nil
}

func seedFrontier(g *stepgraph.Graph) map[stepgraph.NodeID]*pNode {
	frontier := make(map[stepgraph.NodeID]*pNode)
	for tier := 0; tier < g.StartingTierCount(); tier++ {
		for _, id := range g.StartingNodes(tier) {
			if _, ok := frontier[id]; !ok {
				frontier[id] = &pNode{nodeID: id, cost: float64(tier), laneHistogram: map[int]int{}}
			}
		}
	}

	return frontier
}

// expandRow advances every frontier node across whichever target link best
// matches src's step-kind shape, under degradation order: exact shape ->
// same posture looser bracket form -> non-bracket equivalent.
func expandRow(frontier map[stepgraph.NodeID]*pNode, g *stepgraph.Graph, src chart.GraphLinkInstance, time float64, cfg cost.PerformedConfig) (map[stepgraph.NodeID]*pNode, error) {
	next := make(map[stepgraph.NodeID]*pNode)

	for _, from := range frontier {
		outs, err := g.OutLinks(from.nodeID)
		if err != nil {
			continue
		}
		for level := 0; level < 3; level++ {
			matched := false
			for _, out := range outs {
				if !shapeMatches(src, out.Detail, level) {
					continue
				}
				matched = true
				toState, err := g.NodeState(out.To)
				if err != nil {
					continue
				}
				cand := extend(from, g.Pad(), src, out, toState, time, cfg)
				cand.step.Result.Label = g.Describe(out.To)
				existing, ok := next[out.To]
				if !ok || cand.cost < existing.cost {
					next[out.To] = cand
				}
			}
			if matched {
				break // stop degrading once this frontier node found any match at this level.
			}
		}
	}

	if len(next) == 0 {
		return nil, ErrNoTargetMapping
	}

	return next, nil
}

// shapeMatches compares src's portion pattern against a target link's
// LinkDetail at a given degradation level: 0 = exact KindID match on every
// acting portion, 1 = same posture family (any bracket form), 2 = the
// posture's non-bracket (Single) equivalent.
func shapeMatches(src chart.GraphLinkInstance, d stepgraph.LinkDetail, level int) bool {
	srcPosture := srcPosture(src)

	switch level {
	case 0:
		for f := step.Left; f <= step.Right; f++ {
			for p := step.Heel; p <= step.Toe; p++ {
				if src.Portions[f][p].Acts != d.Portions[f][p].Valid {
					return false
				}
				if src.Portions[f][p].Acts && src.Portions[f][p].KindID != d.Portions[f][p].KindID {
					return false
				}
			}
		}

		return true
	case 1:
		return d.Posture == srcPosture
	default: // 2
		if d.Posture != srcPosture {
			return false
		}

		return !d.InvolvesBracket()
	}
}

func srcPosture(src chart.GraphLinkInstance) step.PostureFamily {
	for f := step.Left; f <= step.Right; f++ {
		for p := step.Heel; p <= step.Toe; p++ {
			if src.Portions[f][p].Acts {
				if k, err := step.ByID(src.Portions[f][p].KindID); err == nil {
					return k.Posture
				}
			}
		}
	}

	return step.PostureNormal
}

func extend(from *pNode, p *pad.Pad, src chart.GraphLinkInstance, out stepgraph.OutLinkInfo, toState stepgraph.NodeState, time float64, cfg cost.PerformedConfig) *pNode {
	next := &pNode{
		nodeID:        out.To,
		parent:        from,
		feet:          from.feet,
		lateralWindow: append([]float64(nil), from.lateralWindow...),
		inwardCount:   from.inwardCount,
		outwardCount:  from.outwardCount,
		totalSteps:    from.totalSteps + 1,
		laneHistogram: cloneHist(from.laneHistogram),
	}

	shapingCost := 0.0
	lanes := make([]int, 0, 2)

	for f := step.Left; f <= step.Right; f++ {
		for port := step.Heel; port <= step.Toe; port++ {
			if !out.Detail.Portions[f][port].Valid {
				continue
			}
			lane := toState.Feet[f][port].Lane
			lanes = append(lanes, lane)
			next.laneHistogram[lane]++

			fh := next.feet[f]
			if fh.haveLast && cfg.StepTightening.Weight > 0 {
				dt := time - fh.lastTime
				dist := p.TravelDistance(fh.lastLane, lane)
				shapingCost += stepTighteningCost(dist, dt, cfg.StepTightening)
			}
			next.feet[f] = footHistory{lastLane: lane, lastTime: time, haveLast: true}
		}
	}

	if len(lanes) > 0 {
		mid := 0.0
		for _, l := range lanes {
			mid += float64(l)
		}
		mid /= float64(len(lanes))
		next.lateralWindow = appendWindow(next.lateralWindow, mid, cfg.LateralTightening.PatternLength)
		shapingCost += lateralCost(next.lateralWindow, cfg.LateralTightening)
	}

	if out.Detail.Posture.IsCrossover() || out.Detail.Posture.IsInvert() {
		next.inwardCount++
	} else {
		next.outwardCount++
	}
	shapingCost += facingCost(next.inwardCount, next.outwardCount, cfg.Facing)

	sep := 0.0
	if toState.Feet[step.Left][step.Heel].Lane != toState.Feet[step.Right][step.Heel].Lane {
		sep = p.TravelDistance(toState.Feet[step.Left][step.Heel].Lane, toState.Feet[step.Right][step.Heel].Lane)
	}
	shapingCost += stretchCost(sep, cfg.StretchTightening)

	shapingCost += arrowWeightsCost(next.laneHistogram, chartTypeKey(p.LaneCount()), cfg.ArrowWeights)

	next.cost = from.cost + shapingCost
	next.step = buildPerformedStep(time, src, out, toState)

	return next
}

// chartTypeKey maps a target pad's lane count to the ArrowWeights key it
// should be scored against (spec §6 "ArrowWeights is keyed by chart type").
// A lane count this module doesn't name a type for scores no arrow-weights
// cost at all.
func chartTypeKey(laneCount int) string {
	switch laneCount {
	case 4:
		return "single"
	case 8:
		return "double"
	default:
		return ""
	}
}

// arrowWeightsCost is the squared-deviation distance between the observed
// per-lane step frequency and the configured desired distribution (spec
// §4.2 "Desired arrow weights"). Lanes beyond the configured weight list, or
// a chart type with no configured weights, contribute nothing.
func arrowWeightsCost(hist map[int]int, chartType string, weights map[string]cost.ArrowWeights) float64 {
	desired, ok := weights[chartType]
	if !ok || len(desired) == 0 {
		return 0
	}

	total := 0
	for _, c := range hist {
		total += c
	}
	if total == 0 {
		return 0
	}

	var sum float64
	for lane, want := range desired {
		actual := float64(hist[lane]) / float64(total)
		diff := actual - want
		sum += diff * diff
	}

	return sum
}

func cloneHist(h map[int]int) map[int]int {
	c := make(map[int]int, len(h))
	for k, v := range h {
		c[k] = v
	}

	return c
}

func appendWindow(w []float64, v float64, patternLength int) []float64 {
	if patternLength <= 0 {
		patternLength = 1
	}
	w = append(w, v)
	if len(w) > patternLength {
		w = w[len(w)-patternLength:]
	}

	return w
}

func stepTighteningCost(dist, dt float64, c cost.StepTighteningConfig) float64 {
	if c.Weight <= 0 || dt <= 0 {
		return 0
	}
	if c.MaxTime <= c.MinTime {
		return 0
	}
	if dt >= c.MaxTime {
		return 0
	}
	t := c.MaxTime - dt
	if dt <= c.MinTime {
		t = c.MaxTime - c.MinTime
	}
	frac := t / (c.MaxTime - c.MinTime)
	frac = math.Max(0, math.Min(1, frac))

	return frac * dist * c.Weight
}

func lateralCost(window []float64, c cost.LateralTighteningConfig) float64 {
	if c.Weight <= 0 || len(window) < 2 {
		return 0
	}
	speed := math.Abs(window[len(window)-1]-window[0]) / float64(len(window))
	if speed <= c.Speed {
		return 0
	}

	return (speed - c.Speed) * c.Weight
}

func facingCost(inward, outward int, c cost.FacingConfig) float64 {
	if c.Weight <= 0 {
		return 0
	}
	total := float64(inward + outward)
	if total == 0 {
		return 0
	}
	penalty := 0.0
	if c.MaxInwardPercent >= 0 && float64(inward)/total > c.MaxInwardPercent {
		penalty += c.Weight
	}
	if c.MaxOutwardPercent >= 0 && float64(outward)/total > c.MaxOutwardPercent {
		penalty += c.Weight
	}

	return penalty
}

func stretchCost(separation float64, c cost.StretchTighteningConfig) float64 {
	if c.Weight <= 0 || c.StretchDistanceMin < 0 {
		return 0
	}
	if separation <= c.StretchDistanceMin {
		return 0
	}
	capped := math.Min(separation, c.StretchDistanceMax)
	span := c.StretchDistanceMax - c.StretchDistanceMin
	if span <= 0 {
		return c.Weight
	}

	return (capped - c.StretchDistanceMin) / span * c.Weight
}

// buildPerformedStep records this link's result, carrying each acting
// portion's source-pad lane and instance annotation forward from src so the
// performed chart can report a full source-to-target lane mapping (spec §3
// "Performed chart").
func buildPerformedStep(time float64, src chart.GraphLinkInstance, out stepgraph.OutLinkInfo, toState stepgraph.NodeState) *chart.PerformedStep {
	ps := &chart.PerformedStep{
		RowPosition: int64(time),
		LinkID:      string(out.LinkID),
		Result:      chart.GraphNodeInstance{NodeID: string(out.To)},
	}
	for f := step.Left; f <= step.Right; f++ {
		for p := step.Heel; p <= step.Toe; p++ {
			lp := out.Detail.Portions[f][p]
			if !lp.Valid {
				continue
			}
			sp := src.Portions[f][p]
			targetLane := toState.Feet[f][p].Lane
			ps.Portions[f][p] = chart.PortionAnnotation{
				Acts:       true,
				KindID:     lp.KindID,
				Action:     lp.Action,
				Instance:   sp.Instance,
				SourceLane: sp.SourceLane,
			}
			ps.Lanes = append(ps.Lanes, chart.LaneAssignment{SourceLane: sp.SourceLane, TargetLane: targetLane})
		}
	}

	return ps
}

func best(frontier map[stepgraph.NodeID]*pNode) *pNode {
	var b *pNode
	for _, n := range frontier {
		if b == nil || n.cost < b.cost {
			b = n
		}
	}

	return b
}

func partial(n *pNode) *chart.PerformedChart {
	var steps []chart.PerformedStep
	for cur := n; cur != nil && cur.step != nil; cur = cur.parent {
		steps = append([]chart.PerformedStep{*cur.step}, steps...)
	}

	return &chart.PerformedChart{Steps: steps}
}
