package pad_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/padstep/internal/fixture"
	"github.com/katalvlaran/padstep/pad"
)

func TestNewRejectsEmptyPad(t *testing.T) {
	_, err := pad.New(pad.Spec{})
	assert.ErrorIs(t, err, pad.ErrNoLanes)
}

func TestNewRejectsWrongShapedMatrix(t *testing.T) {
	spec := pad.Spec{
		Lanes:             []pad.LaneSpec{{X: 0, Y: 0}, {X: 1, Y: 0}},
		ValidNextArrow:    [][]bool{{true}}, // wrong shape: should be 2x2
		StartingPositions: [][]pad.StartPosition{{{Left: 0, Right: 1}}},
	}
	_, err := pad.New(spec)
	assert.ErrorIs(t, err, pad.ErrMatrixWrongShape)
}

func TestNewRejectsMultiTierZero(t *testing.T) {
	n := 2
	ones := func() [][]bool {
		m := make([][]bool, n)
		for i := range m {
			m[i] = make([]bool, n)
		}

		return m
	}
	spec := pad.Spec{
		Lanes:               []pad.LaneSpec{{X: 0, Y: 0}, {X: 1, Y: 0}},
		ValidNextArrow:      ones(),
		BracketableHeelWith: [2][][]bool{ones(), ones()},
		BracketableToeWith:  [2][][]bool{ones(), ones()},
		NormalPair:          [2][][]bool{ones(), ones()},
		CrossoverFront:      [2][][]bool{ones(), ones()},
		CrossoverBehind:     [2][][]bool{ones(), ones()},
		Inverted:            [2][][]bool{ones(), ones()},
		StartingPositions:   [][]pad.StartPosition{{{Left: 0, Right: 1}, {Left: 1, Right: 0}}},
	}
	_, err := pad.New(spec)
	assert.ErrorIs(t, err, pad.ErrTierZeroNotSingleton)
}

func TestFourLaneSinglesMirrorAndFlip(t *testing.T) {
	p := fixture.FourLaneSingles()
	require.Equal(t, 4, p.LaneCount())

	// Left(0) <-> Right(3) mirror; Down(1)/Up(2) are each their own mirror.
	assert.Equal(t, 3, p.MirroredLane(0))
	assert.Equal(t, 0, p.MirroredLane(3))
	assert.Equal(t, 1, p.MirroredLane(1))
	assert.Equal(t, 2, p.MirroredLane(2))

	// Down(1) <-> Up(2) flip; Left(0)/Right(3) are each their own flip.
	assert.Equal(t, 2, p.FlippedLane(1))
	assert.Equal(t, 1, p.FlippedLane(2))
	assert.Equal(t, 0, p.FlippedLane(0))
	assert.Equal(t, 3, p.FlippedLane(3))
}

func TestMaxBracketSeparationMatchesAdjacentPairs(t *testing.T) {
	p := fixture.FourLaneSingles()
	assert.Equal(t, 1, p.MaxBracketSeparation())
}

func TestTravelDistanceSymmetricAndZeroOnSelf(t *testing.T) {
	p := fixture.FourLaneSingles()
	for a := 0; a < p.LaneCount(); a++ {
		assert.Zero(t, p.TravelDistance(a, a))
		for b := 0; b < p.LaneCount(); b++ {
			assert.InDelta(t, p.TravelDistance(a, b), p.TravelDistance(b, a), 1e-9)
		}
	}
}

func TestStartingTierZeroIsSingleton(t *testing.T) {
	p := fixture.FourLaneSingles()
	require.Equal(t, 1, p.StartingTierCount())
	tier0 := p.StartingTier(0)
	require.Len(t, tier0, 1)
	assert.Equal(t, 0, tier0[0].Left)
	assert.Equal(t, 3, tier0[0].Right)
}
