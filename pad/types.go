// Package pad is the static description of one pad layout (spec §3 "Pad
// geometry", §4's C1 Pad Model): lane geometry, bracketability, and
// crossover/invert feasibility predicates, plus the starting-position tiers
// the step graph builder (stepgraph) seeds its worklist from.
//
// A *Pad is immutable once New returns. Like the teacher's core.Graph it is
// safe to share by reference across goroutines; unlike core.Graph it needs
// no mutex, because nothing ever mutates it after construction (spec §3
// Lifecycle: "Pad geometry is immutable after load").
package pad

import "errors"

// Sentinel errors. Checked with errors.Is by padio and by callers that
// construct a Pad directly (tests, internal/fixture).
var (
	// ErrInvalid is the umbrella sentinel every other error in this list is
	// also wrapped under, so callers that only care "was this pad geometry
	// bad" can errors.Is against one value (this is what chart.ErrPadInvalid
	// aliases, since chart already depends on pad and can't be depended on
	// back).
	ErrInvalid = errors.New("pad: geometry is invalid")

	ErrNoLanes              = errors.New("pad: a pad needs at least one lane")
	ErrMatrixWrongShape     = errors.New("pad: boolean matrix has the wrong shape for this pad's lane count")
	ErrLaneOutOfRange       = errors.New("pad: lane index out of range")
	ErrNoStartingTiers      = errors.New("pad: at least one starting-position tier is required")
	ErrTierZeroNotSingleton = errors.New("pad: starting-position tier 0 must contain exactly one position")
	ErrNotMirrorSymmetric   = errors.New("pad: lane coordinates are not mirror-symmetric (no lane matches the mirrored X)")
	ErrNotFlipSymmetric     = errors.New("pad: lane coordinates are not flip-symmetric (no lane matches the flipped Y)")
)

// Foot mirrors step.Foot without importing the step package, keeping pad a
// leaf with no dependency on the step vocabulary it is indexed by.
type Foot int

const (
	Left Foot = iota
	Right
)

// LaneSpec is one lane's immutable geometry, as provided by the external pad
// geometry file (spec §6) after padio has parsed and type-checked it.
type LaneSpec struct {
	X, Y int
}

// StartPosition is one candidate (left lane, right lane) resting pair within
// a starting-position tier (spec §3).
type StartPosition struct {
	Left, Right int
}

// Spec is the full set of inputs pad.New needs to build a Pad: per-lane
// geometry plus the foot/lane-indexed boolean predicate matrices from spec
// §3. Matrices are addressed matrix[foot][lane][otherLane].
type Spec struct {
	Lanes []LaneSpec

	// ValidNextArrow[a][a'] reports whether stepping from lane a to lane a'
	// is ever a legal "new arrow" transition for either foot, independent of
	// bracket/crossover/invert feasibility (those are the matrices below).
	ValidNextArrow [][]bool

	BracketableHeelWith [2][][]bool
	BracketableToeWith  [2][][]bool
	NormalPair          [2][][]bool
	CrossoverFront      [2][][]bool
	CrossoverBehind     [2][][]bool
	Inverted            [2][][]bool

	// StartingPositions[tier] lists the candidate positions for that tier.
	// Tier 0 must contain exactly one element (spec §3).
	StartingPositions [][]StartPosition

	// YTravelCompensation shortens longitudinal travel for heel/toe reach
	// (spec §3's constant c). Defaults to 0.5 if left at zero (spec §6).
	YTravelCompensation float64
}
