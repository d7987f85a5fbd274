package cost_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/padstep/cost"
	"github.com/katalvlaran/padstep/step"
)

func TestTransitionCostOrdering(t *testing.T) {
	sit := cost.Situation{}
	same := cost.TransitionCost(step.PostureNormal, false, false, false, sit, cost.Balanced)
	bracket := cost.TransitionCost(step.PostureNormal, true, false, false, sit, cost.Balanced)
	footswap := cost.TransitionCost(step.PostureNormal, false, true, false, sit, cost.Balanced)
	crossover := cost.TransitionCost(step.PostureCrossoverFront, false, false, false, sit, cost.Balanced)
	invert := cost.TransitionCost(step.PostureInvertFront, false, false, false, sit, cost.Balanced)
	doubleStep := cost.TransitionCost(step.PostureNormal, false, false, false, cost.Situation{IsDoubleStep: true}, cost.Balanced)

	assert.Less(t, same, bracket)
	assert.Less(t, bracket, footswap)
	assert.Less(t, footswap, crossover)
	assert.Less(t, crossover, invert)
	assert.Less(t, invert, doubleStep)
}

func TestTransitionCostReleaseIsZero(t *testing.T) {
	assert.Equal(t, cost.CostRelease, cost.TransitionCost(step.PostureNormal, false, false, true, cost.Situation{}, cost.Balanced))
}

func TestTransitionCostMineHalvesDoubleStep(t *testing.T) {
	plain := cost.TransitionCost(step.PostureNormal, false, false, false, cost.Situation{IsDoubleStep: true}, cost.Balanced)
	mined := cost.TransitionCost(step.PostureNormal, false, false, false, cost.Situation{IsDoubleStep: true, MineIndicated: true}, cost.Balanced)
	assert.Less(t, mined, plain)
}

func TestTransitionCostNoBracketsPenalty(t *testing.T) {
	plain := cost.TransitionCost(step.PostureNormal, true, false, false, cost.Situation{}, cost.Balanced)
	penalized := cost.TransitionCost(step.PostureNormal, true, false, false, cost.Situation{}, cost.NoBrackets)
	assert.GreaterOrEqual(t, penalized-plain, cost.NoBracketsPenalty)
}

func TestJumpPenaltyOnlyUnderAggressiveWithAlternative(t *testing.T) {
	assert.Equal(t, 0, cost.JumpPenalty(cost.Balanced, true))
	assert.Equal(t, 0, cost.JumpPenalty(cost.Aggressive, false))
	assert.Equal(t, cost.AggressiveBracketJumpPenalty, cost.JumpPenalty(cost.Aggressive, true))
}

func TestMergeOverrideIdempotent(t *testing.T) {
	parent := cost.PerformedConfig{
		Facing: cost.FacingConfig{MaxInwardPercent: 0.3, MaxOutwardPercent: 0.3, Weight: 1},
		StepTightening: cost.StepTighteningConfig{MinTime: 0.1, MaxTime: 0.5, Weight: 1},
	}
	child := cost.PerformedConfig{
		Facing:         cost.FacingConfig{MaxInwardPercent: cost.Unset, MaxOutwardPercent: 0.1, Weight: cost.Unset},
		StepTightening: cost.StepTighteningConfig{MinTime: cost.Unset, MaxTime: cost.Unset, Weight: cost.Unset},
	}

	once := child.MergeOverride(parent)
	twice := once.MergeOverride(parent)
	assert.Equal(t, once, twice)
	assert.Equal(t, 0.3, once.Facing.MaxInwardPercent)
	assert.Equal(t, 0.1, once.Facing.MaxOutwardPercent)
}

func TestNormalizeArrowWeightsSumsToOne(t *testing.T) {
	w := cost.ArrowWeights{1, 1, 2}
	cost.NormalizeArrowWeights(w)
	var sum float64
	for _, v := range w {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestPerformedConfigValidateCollectsAllErrors(t *testing.T) {
	c := cost.PerformedConfig{
		Facing:            cost.FacingConfig{MaxInwardPercent: 2.0},
		StepTightening:    cost.StepTighteningConfig{MinTime: 5, MaxTime: 1},
		LateralTightening: cost.LateralTighteningConfig{PatternLength: 0},
		ArrowWeights:      map[string]cost.ArrowWeights{"single": {0.2, 0.2}},
	}
	err := c.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, cost.ErrConfigInvalid)
}

func TestPerformedConfigValidateAcceptsUnsetFields(t *testing.T) {
	c := cost.PerformedConfig{
		Facing:            cost.FacingConfig{MaxInwardPercent: cost.Unset, MaxOutwardPercent: cost.Unset, Weight: cost.Unset},
		StepTightening:    cost.StepTighteningConfig{MinTime: cost.Unset, MaxTime: cost.Unset, Weight: cost.Unset},
		LateralTightening: cost.LateralTighteningConfig{PatternLength: cost.Unset, Speed: cost.Unset, AbsoluteNPS: cost.Unset, RelativeNPS: cost.Unset, Weight: cost.Unset},
		StretchTightening: cost.StretchTighteningConfig{StretchDistanceMin: cost.Unset, StretchDistanceMax: cost.Unset, Weight: cost.Unset},
	}
	assert.NoError(t, c.Validate())
}
