// Package fixture builds small, hand-specified pads used by tests, without
// needing a pad-geometry file loader in the test path.
package fixture

import "github.com/katalvlaran/padstep/pad"

// FourLaneSingles returns a minimal 4-lane "singles" pad: lanes
// 0=Left, 1=Down, 2=Up, 3=Right laid out as a diamond, matching spec §8's
// scenario E1-E5 pad.
func FourLaneSingles() *pad.Pad {
	return buildSquarePad([]pad.LaneSpec{
		{X: 0, Y: 1}, // 0 Left
		{X: 1, Y: 0}, // 1 Down
		{X: 1, Y: 2}, // 2 Up
		{X: 2, Y: 1}, // 3 Right
	}, []pad.StartPosition{{Left: 0, Right: 3}})
}

// EightLaneDoubles returns a minimal 8-lane "doubles" pad: eight lanes on
// one flat row (x = 0..7, y = 0), with starting tier 0 = (3, 4) as in
// spec §8 scenario E6's target pad.
func EightLaneDoubles() *pad.Pad {
	lanes := make([]pad.LaneSpec, 8)
	for i := range lanes {
		lanes[i] = pad.LaneSpec{X: i, Y: 0}
	}

	return buildSquarePad(lanes, []pad.StartPosition{{Left: 3, Right: 4}})
}

// buildSquarePad wires up the boolean predicate matrices for a simple
// "adjacent lanes are bracketable, lane order decides normal/crossover
// posture" toy pad. This is intentionally simplistic — real pad geometry
// files (padio) carry hand-authored matrices — but it is internally
// consistent and exercises every predicate the step graph builder reads.
func buildSquarePad(lanes []pad.LaneSpec, tier0 []pad.StartPosition) *pad.Pad {
	n := len(lanes)

	validNext := boolMatrix(n, func(a, b int) bool { return true })

	bracketAdjacent := boolMatrix(n, func(a, b int) bool {
		d := a - b
		if d < 0 {
			d = -d
		}

		return d == 1
	})

	normalLeft := boolMatrix(n, func(a, b int) bool { return a <= b })
	normalRight := boolMatrix(n, func(a, b int) bool { return a >= b })
	crossLeft := boolMatrix(n, func(a, b int) bool { return a > b })
	crossRight := boolMatrix(n, func(a, b int) bool { return a < b })
	none := boolMatrix(n, func(a, b int) bool { return false })

	spec := pad.Spec{
		Lanes:          lanes,
		ValidNextArrow: validNext,
		BracketableHeelWith: [2][][]bool{bracketAdjacent, bracketAdjacent},
		BracketableToeWith:  [2][][]bool{bracketAdjacent, bracketAdjacent},
		NormalPair:          [2][][]bool{normalLeft, normalRight},
		CrossoverFront:      [2][][]bool{crossLeft, crossRight},
		CrossoverBehind:     [2][][]bool{none, none},
		Inverted:            [2][][]bool{none, none},
		StartingPositions:   [][]pad.StartPosition{tier0},
	}

	p, err := pad.New(spec)
	if err != nil {
		// Fixture construction is a programmer error if it ever fails: the
		// matrices above are generated to satisfy pad.New's invariants by
		// construction. Panicking here matches the teacher's convention
		// that option/fixture constructors fail fast and loud, never the
		// runtime algorithms (spec §7).
		panic("fixture: " + err.Error())
	}

	return p
}

func boolMatrix(n int, f func(a, b int) bool) [][]bool {
	m := make([][]bool, n)
	for a := 0; a < n; a++ {
		m[a] = make([]bool, n)
		for b := 0; b < n; b++ {
			m[a][b] = f(a, b)
		}
	}

	return m
}
