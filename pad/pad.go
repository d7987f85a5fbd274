package pad

import (
	"fmt"
	"math"
)

// Pad is the built, validated, immutable pad layout.
type Pad struct {
	lanes []LaneSpec

	validNextArrow      [][]bool
	bracketableHeelWith [2][][]bool
	bracketableToeWith  [2][][]bool
	normalPair          [2][][]bool
	crossoverFront      [2][][]bool
	crossoverBehind     [2][][]bool
	inverted            [2][][]bool

	mirroredLane []int
	flippedLane  []int
	travel       [][]float64

	startingPositions []([]StartPosition)

	yTravelCompensation float64
	maxBracketSeparation int
}

const defaultYTravelCompensation = 0.5

// New validates spec and builds an immutable Pad, or returns a descriptive
// error. Validation order: lane count, matrix shapes, starting-tier shape,
// then starting-position lane bounds — matching the teacher's validate-early,
// fail-on-first-structural-problem discipline (structural shape errors are
// not collected like cost.Config's leaf-field errors because a wrong-shaped
// matrix makes every other check meaningless).
func New(spec Spec) (*Pad, error) {
	n := len(spec.Lanes)
	if n == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, ErrNoLanes)
	}

	if err := checkMatrix2D(spec.ValidNextArrow, n); err != nil {
		return nil, fmt.Errorf("%w: validNextArrow: %w", ErrInvalid, err)
	}
	for f := 0; f < 2; f++ {
		for name, m := range map[string][][]bool{
			"bracketableHeelWith": spec.BracketableHeelWith[f],
			"bracketableToeWith":  spec.BracketableToeWith[f],
			"normalPair":          spec.NormalPair[f],
			"crossoverFront":      spec.CrossoverFront[f],
			"crossoverBehind":     spec.CrossoverBehind[f],
			"inverted":            spec.Inverted[f],
		} {
			if err := checkMatrix2D(m, n); err != nil {
				return nil, fmt.Errorf("%w: %s[foot=%d]: %w", ErrInvalid, name, f, err)
			}
		}
	}

	if len(spec.StartingPositions) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, ErrNoStartingTiers)
	}
	if len(spec.StartingPositions[0]) != 1 {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, ErrTierZeroNotSingleton)
	}
	for tierIdx, tier := range spec.StartingPositions {
		for _, pos := range tier {
			if pos.Left < 0 || pos.Left >= n || pos.Right < 0 || pos.Right >= n {
				return nil, fmt.Errorf("%w: %w: starting tier %d references lane out of [0,%d)", ErrInvalid, ErrLaneOutOfRange, tierIdx, n)
			}
		}
	}

	comp := spec.YTravelCompensation
	if comp == 0 {
		comp = defaultYTravelCompensation
	}

	p := &Pad{
		lanes:               append([]LaneSpec(nil), spec.Lanes...),
		validNextArrow:      spec.ValidNextArrow,
		bracketableHeelWith: spec.BracketableHeelWith,
		bracketableToeWith:  spec.BracketableToeWith,
		normalPair:          spec.NormalPair,
		crossoverFront:      spec.CrossoverFront,
		crossoverBehind:     spec.CrossoverBehind,
		inverted:            spec.Inverted,
		startingPositions:   append([][]StartPosition(nil), spec.StartingPositions...),
		yTravelCompensation: comp,
	}

	if err := p.computeMirrorFlip(); err != nil {
		return nil, err
	}
	p.computeTravel()
	p.computeMaxBracketSeparation()

	return p, nil
}

func checkMatrix2D(m [][]bool, n int) error {
	if len(m) != n {
		return ErrMatrixWrongShape
	}
	for _, row := range m {
		if len(row) != n {
			return ErrMatrixWrongShape
		}
	}

	return nil
}

// computeMirrorFlip derives MirroredLane/FlippedLane from the coordinate
// extrema (spec §3 invariant: both are defined for every lane because
// coordinates are symmetric).
func (p *Pad) computeMirrorFlip() error {
	n := len(p.lanes)
	minX, maxX := p.lanes[0].X, p.lanes[0].X
	minY, maxY := p.lanes[0].Y, p.lanes[0].Y
	for _, l := range p.lanes {
		minX, maxX = minInt(minX, l.X), maxInt(maxX, l.X)
		minY, maxY = minInt(minY, l.Y), maxInt(maxY, l.Y)
	}
	mirrorSum := minX + maxX
	flipSum := minY + maxY

	p.mirroredLane = make([]int, n)
	p.flippedLane = make([]int, n)
	for i, l := range p.lanes {
		mi, ok := p.findLane(mirrorSum-l.X, l.Y)
		if !ok {
			return fmt.Errorf("%w: lane %d at (%d,%d)", ErrNotMirrorSymmetric, i, l.X, l.Y)
		}
		p.mirroredLane[i] = mi

		fi, ok := p.findLane(l.X, flipSum-l.Y)
		if !ok {
			return fmt.Errorf("%w: lane %d at (%d,%d)", ErrNotFlipSymmetric, i, l.X, l.Y)
		}
		p.flippedLane[i] = fi
	}

	return nil
}

func (p *Pad) findLane(x, y int) (int, bool) {
	for i, l := range p.lanes {
		if l.X == x && l.Y == y {
			return i, true
		}
	}

	return 0, false
}

// computeTravel precomputes the travelDistance[a][a'] matrix (spec §3):
// sqrt(dx^2 + max(0, |dy|-c)^2), c = yTravelCompensation.
func (p *Pad) computeTravel() {
	n := len(p.lanes)
	p.travel = make([][]float64, n)
	for a := 0; a < n; a++ {
		p.travel[a] = make([]float64, n)
		for b := 0; b < n; b++ {
			dx := float64(p.lanes[a].X - p.lanes[b].X)
			dy := math.Abs(float64(p.lanes[a].Y - p.lanes[b].Y))
			dy = math.Max(0, dy-p.yTravelCompensation)
			p.travel[a][b] = math.Sqrt(dx*dx + dy*dy)
		}
	}
}

// computeMaxBracketSeparation computes max(|a-a'|) over all bracketable
// pairs of either foot, either portion (spec §3).
func (p *Pad) computeMaxBracketSeparation() {
	n := len(p.lanes)
	maxSep := 0
	for f := 0; f < 2; f++ {
		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				if p.bracketableHeelWith[f][a][b] || p.bracketableToeWith[f][a][b] {
					sep := a - b
					if sep < 0 {
						sep = -sep
					}
					if sep > maxSep {
						maxSep = sep
					}
				}
			}
		}
	}
	p.maxBracketSeparation = maxSep
}

func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}

// LaneCount returns the number of lanes on this pad.
func (p *Pad) LaneCount() int { return len(p.lanes) }

// Lane returns the geometry of lane i. Callers are expected to have
// validated i via LaneCount; out-of-range access panics like a slice
// index would (this is an internal invariant, not a user-facing error path).
func (p *Pad) Lane(i int) LaneSpec { return p.lanes[i] }

// MirroredLane returns the lane that mirrors lane i across the pad's
// vertical midline.
func (p *Pad) MirroredLane(i int) int { return p.mirroredLane[i] }

// FlippedLane returns the lane that mirrors lane i across the pad's
// horizontal midline.
func (p *Pad) FlippedLane(i int) int { return p.flippedLane[i] }

// TravelDistance returns the precomputed travel cost between lanes a and b.
func (p *Pad) TravelDistance(a, b int) float64 { return p.travel[a][b] }

// MaxBracketSeparation bounds the inner loop for bracket enumeration in
// stepgraph's builder (spec §4.1 Performance).
func (p *Pad) MaxBracketSeparation() int { return p.maxBracketSeparation }

// YTravelCompensation returns the configured longitudinal-travel constant.
func (p *Pad) YTravelCompensation() float64 { return p.yTravelCompensation }

// ValidNextArrow reports whether a->b is ever a legal new-arrow transition.
func (p *Pad) ValidNextArrow(a, b int) bool { return p.validNextArrow[a][b] }

// BracketableHeelWith reports whether (a, b) form a heel bracket for foot f.
func (p *Pad) BracketableHeelWith(f Foot, a, b int) bool { return p.bracketableHeelWith[f][a][b] }

// BracketableToeWith reports whether (a, b) form a toe bracket for foot f.
func (p *Pad) BracketableToeWith(f Foot, a, b int) bool { return p.bracketableToeWith[f][a][b] }

// NormalPair reports whether foot f on a with the other foot on b is a
// normal (non-crossed) posture.
func (p *Pad) NormalPair(f Foot, a, b int) bool { return p.normalPair[f][a][b] }

// CrossoverFront reports whether foot f on a with the other foot on b is a
// front-crossover posture.
func (p *Pad) CrossoverFront(f Foot, a, b int) bool { return p.crossoverFront[f][a][b] }

// CrossoverBehind reports whether foot f on a with the other foot on b is a
// behind-crossover posture.
func (p *Pad) CrossoverBehind(f Foot, a, b int) bool { return p.crossoverBehind[f][a][b] }

// Inverted reports whether foot f on a with the other foot on b is an
// inverted posture.
func (p *Pad) Inverted(f Foot, a, b int) bool { return p.inverted[f][a][b] }

// StartingTierCount returns the number of starting-position tiers.
func (p *Pad) StartingTierCount() int { return len(p.startingPositions) }

// StartingTier returns the candidate positions of tier i.
func (p *Pad) StartingTier(i int) []StartPosition { return p.startingPositions[i] }
