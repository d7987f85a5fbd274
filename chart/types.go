// Package chart holds the types shared at the boundary between components:
// the input chart event stream (spec §3 "Chart event"), and the expressed
// and performed chart outputs (spec §3, §6). It is the "plain data plus
// sentinel errors" leaf the teacher's core/types.go plays for the graph
// package — no algorithm lives here, only the shapes C5 and C6 agree on.
package chart

import "github.com/katalvlaran/padstep/step"

// EventKind enumerates the closed set of chart event kinds (spec §3).
type EventKind int

const (
	Tap EventKind = iota
	HoldStart
	HoldEnd
	Mine
	Lift
	Fake
	RollEvent
)

func (k EventKind) String() string {
	switch k {
	case Tap:
		return "Tap"
	case HoldStart:
		return "HoldStart"
	case HoldEnd:
		return "HoldEnd"
	case Mine:
		return "Mine"
	case Lift:
		return "Lift"
	case Fake:
		return "Fake"
	case RollEvent:
		return "Roll"
	default:
		return "EventKind(?)"
	}
}

// Event is one (lane, position) chart event (spec §3). Position is an
// abstract, strictly-ordered time unit (a tick count or row index) — this
// package never interprets it as wall-clock time; that scaling is the
// concern of the external chart parser (spec §1 "out of scope").
type Event struct {
	Lane     int
	Position int64
	Kind     EventKind
}

// Row is the set of chart events that share a Position (spec, Glossary
// "Row").
type Row struct {
	Position int64
	Events   []Event
}

// GraphNodeInstance identifies the resulting foot-state node of one step,
// and the node's human-diagnostic label (stepgraph.Graph.Describe), kept
// alongside the ID so expressed/performed chart consumers that don't hold a
// live *stepgraph.Graph reference can still explain a result.
type GraphNodeInstance struct {
	NodeID string
	Label  string
}

// PortionAnnotation is the chart-visible detail of one acting foot/portion
// within a step: which step kind it took part in, the contact action, and
// the instance-type annotation carried from the source chart event
// (spec §3: Default/Roll/Fake/Lift).
type PortionAnnotation struct {
	Acts bool
	// SourceLane is the lane this portion acted on in the chart that
	// produced it — the expressed chart's own pad lane when set by
	// expressed.Search, carried through unchanged by performed.Search so
	// PerformedStep.Lanes can report a source-to-target mapping (spec §3
	// "Performed chart").
	SourceLane int
	KindID     int
	Action     step.Action
	Instance   step.InstanceType
}

// GraphLinkInstance is one expressed-chart entry: a graph link plus the
// per-(foot,portion) instance-type annotations and the resulting node
// (spec §3 "Expressed chart").
type GraphLinkInstance struct {
	RowPosition int64
	LinkID      string

	// Portions[foot][portion].
	Portions [2][2]PortionAnnotation

	Result GraphNodeInstance

	// MineIndicated records whether the row that produced this link holds a
	// mine event on any lane (spec §4.2's "mine hint"), kept for cost-model
	// diagnostics and for idempotent replay in the performed search.
	MineIndicated bool

	// Cost is the cost.TransitionCost value the expressed search charged
	// for this one link, kept for diagnostics and exact-cost assertions
	// (spec §8's pinned per-scenario costs) without re-deriving the cost
	// model from the annotation fields alone.
	Cost int
}

// ExpressedChart is the ordered output of the expressed-chart search
// (spec §3, §4.3).
type ExpressedChart struct {
	Links []GraphLinkInstance
}

// TotalCost sums costOf over every link; pass a func returning l.Cost to
// total the per-link costs the search recorded.
// Exposed mainly for tests pinning cost-ordering properties (spec §8 #6).
func (c *ExpressedChart) TotalCost(costOf func(GraphLinkInstance) int) int {
	total := 0
	for _, l := range c.Links {
		total += costOf(l)
	}

	return total
}

// LaneAssignment maps one source lane to the target lane it was replayed
// onto (spec §3 "Performed chart").
type LaneAssignment struct {
	SourceLane int
	TargetLane int
}

// PerformedStep is one performed-chart entry.
type PerformedStep struct {
	RowPosition int64
	LinkID      string

	Portions [2][2]PortionAnnotation
	Lanes    []LaneAssignment

	Result GraphNodeInstance
}

// PerformedChart is the ordered output of the performed-chart search
// (spec §3, §4.4).
type PerformedChart struct {
	Steps []PerformedStep
}
