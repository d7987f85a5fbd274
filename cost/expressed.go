// Package cost implements the two cost models: a fixed integer weight table
// driving the expressed-chart search (C4, expressed half) and a
// configuration-driven shaping-cost bundle driving the performed-chart
// search (C4, performed half).
package cost

import "github.com/katalvlaran/padstep/step"

// BracketParsingMethod selects which bracket-cost adjustments apply during
// an expressed search (spec §4.3).
type BracketParsingMethod int

const (
	NoBrackets BracketParsingMethod = iota
	Balanced
	Aggressive
)

func (m BracketParsingMethod) String() string {
	switch m {
	case NoBrackets:
		return "NoBrackets"
	case Balanced:
		return "Balanced"
	case Aggressive:
		return "Aggressive"
	default:
		return "BracketParsingMethod(?)"
	}
}

// BracketParsingDetermination picks how the method above is chosen for a
// given chart (spec §4.3).
type BracketParsingDetermination int

const (
	UseDefault BracketParsingDetermination = iota
	ChooseDynamically
)

// ExpressedConfig is the fixed weight table plus the thresholds that decide
// dynamic bracket-method selection (spec §6 ExpressedChartConfig).
//
// The numeric weights are a designer-tuned heuristic, not a derived
// quantity (spec §9 "Cost-table stability"): callers and tests should rely
// on the relative *ordering* of these constants, not their exact values.
type ExpressedConfig struct {
	DefaultBracketParsingMethod BracketParsingMethod
	BracketParsingDetermination BracketParsingDetermination

	// DifficultyLevel is the chart's own declared difficulty rating, the
	// other half of spec §4.3's NoBrackets-under-ChooseDynamically test
	// alongside BalancedBracketsPerMinuteForNoBrackets. It travels with this
	// config bundle rather than living on chart.Row, since difficulty is a
	// per-chart metadata value, not a per-event one.
	DifficultyLevel int

	MinLevelForBrackets                                                           int
	UseAggressiveBracketsWhenMoreSimultaneousNotesThanCanBeCoveredWithoutBrackets bool
	BalancedBracketsPerMinuteForAggressiveBrackets                                float64
	BalancedBracketsPerMinuteForNoBrackets                                        float64

	// RandomizeTies enables spec §5's "random shuffle of equally-weighted
	// successor indices ... from a single seedable pseudo-random source":
	// when set, the frontier and each node's outgoing links are visited in
	// an order derived from Seed (via internal/rng) rather than Go's
	// unspecified map-iteration order, so a true cost/orientation/kind tie
	// is broken reproducibly instead of by runtime happenstance.
	RandomizeTies bool

	// Seed is the root seed mixed per-row (via internal/rng.DeriveSeed) into
	// an independent substream, so shuffling one row's ties never perturbs
	// another's. Seed==0 is remapped to a fixed default by internal/rng, so
	// a zero-value config is still deterministic rather than time-based.
	Seed int64
}

// DefaultExpressedConfig returns the stock thresholds used when a caller has
// no chart-specific tuning of its own.
func DefaultExpressedConfig() ExpressedConfig {
	return ExpressedConfig{
		DefaultBracketParsingMethod:                    Balanced,
		BracketParsingDetermination:                    UseDefault,
		DifficultyLevel:                                1,
		MinLevelForBrackets:                            1,
		BalancedBracketsPerMinuteForNoBrackets:          1,
		BalancedBracketsPerMinuteForAggressiveBrackets:  60,
	}
}

// Weight constants for the expressed search, satisfying spec §4.2's ordering
// doubleStep > invert > crossover > footswap > bracket > alternating >
// same-arrow, and the "releases cost 0" / "mine halves a double step" /
// large fixed penalties for NoBrackets and Aggressive rules.
const (
	CostSameArrow    = 0
	CostAlternating  = 0
	CostRelease      = 0

	CostBracket   = 40
	CostFootswap  = 60
	CostCrossover = 80
	CostInvert    = 120

	// CostNewArrowDoubleStep must clear CostInvert even after the largest
	// orientation-tier nudge (step.PostureFamily.Tier() tops out at 3) is
	// folded into both sides, so doubleStep > invert holds unconditionally.
	CostNewArrowDoubleStep              = 200
	CostNewArrowDoubleStepMineIndicated = 100

	// NoBracketsPenalty is added to any bracket-involving link when the
	// search runs in NoBrackets mode (spec §4.2, §8 E5: "≥1000").
	NoBracketsPenalty = 1000

	// AggressiveBracketJumpPenalty is added to a jump interpretation when a
	// bracket interpretation exists for the same pair, under Aggressive mode
	// (spec §4.2).
	AggressiveBracketJumpPenalty = 1000

	// Small additive nudges for the remaining situational axes spec §4.2
	// says the table is indexed by (other-foot hold state, this-foot hold
	// state, jump exit). None of these ever apply to a release (TransitionCost
	// returns CostRelease before reading them), so "releases cost 0" holds
	// regardless.
	CostThisFootHeld        = 10
	CostExitsJump           = 10
	CostPerOtherHeldPortion = 5
)

// Situation is the contextual axes spec §4.2 says the table must be indexed
// by — not step kind alone.
type Situation struct {
	OtherFootHeldPortions int // 0, 1 or 2
	ThisFootHeld          bool
	MineIndicated         bool
	IsFirstStep           bool
	ExitsJump             bool
	IsDoubleStep          bool
	IsTripleStep          bool
}

// TransitionCost computes the expressed-search cost of traversing link d out
// of a situation described by sit, under bracket-parsing method m.
func TransitionCost(d step.PostureFamily, isBracket, isFootswap, isRelease bool, sit Situation, m BracketParsingMethod) int {
	if isRelease {
		return CostRelease
	}

	base := 0
	switch {
	case sit.IsDoubleStep || sit.IsTripleStep:
		if sit.MineIndicated {
			base = CostNewArrowDoubleStepMineIndicated
		} else {
			base = CostNewArrowDoubleStep
		}
	case d.IsInvert():
		base = CostInvert
	case d.IsCrossover():
		base = CostCrossover
	case isFootswap:
		base = CostFootswap
	case isBracket:
		base = CostBracket
	default:
		base = CostAlternating
	}

	if isBracket && m == NoBrackets {
		base += NoBracketsPenalty
	}

	if sit.ThisFootHeld {
		base += CostThisFootHeld
	}
	if sit.ExitsJump {
		base += CostExitsJump
	}
	base += sit.OtherFootHeldPortions * CostPerOtherHeldPortion

	// orientation tie-break weight folded in as a tiny additive nudge so
	// equal-base candidates still order Normal < Crossover < Invert without
	// a separate comparison pass (spec §4.2 "tie-break weights for
	// orientation").
	base += d.Tier()

	return base
}

// JumpPenalty returns AggressiveBracketJumpPenalty when a jump interpretation
// competes against a feasible bracket interpretation under Aggressive mode,
// else 0.
func JumpPenalty(m BracketParsingMethod, bracketAlternativeExists bool) int {
	if m == Aggressive && bracketAlternativeExists {
		return AggressiveBracketJumpPenalty
	}

	return 0
}
