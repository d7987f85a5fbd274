package expressed

import (
	"github.com/katalvlaran/padstep/chart"
	"github.com/katalvlaran/padstep/cost"
	"github.com/katalvlaran/padstep/stepgraph"
)

// PrescanResult summarizes a chart's bracket pressure under the Balanced
// interpretation, used by the dynamic bracket-parsing determination
// (spec §4.3 "Bracket-parsing determination").
type PrescanResult struct {
	BalancedBracketsPerMinute float64
	PeakSimultaneousArrows    int
}

// PrescanBracketRate estimates how often rows in a chart would need a
// bracket interpretation and the busiest row's simultaneous-arrow count.
// This does not run a full search — it only inspects row shapes — so it is
// cheap enough to run before committing to a bracket-parsing method.
func PrescanBracketRate(rows []chart.Row, ticksPerMinute float64) PrescanResult {
	var bracketRows int
	peak := 0

	for _, row := range rows {
		_, _, steps := row.Split()
		lanes := map[int]bool{}
		for _, e := range steps {
			lanes[e.Lane] = true
		}
		if len(lanes) > peak {
			peak = len(lanes)
		}
		// A row needs at least one bracket under Balanced whenever it asks
		// for more simultaneous arrows than two feet (one each) can cover.
		if len(lanes) > 2 {
			bracketRows++
		}
	}

	var lastPosition, firstPosition int64
	if len(rows) > 0 {
		firstPosition = rows[0].Position
		lastPosition = rows[len(rows)-1].Position
	}
	span := float64(lastPosition - firstPosition)
	bpm := 0.0
	if span > 0 && ticksPerMinute > 0 {
		minutes := span / ticksPerMinute
		if minutes > 0 {
			bpm = float64(bracketRows) / minutes
		}
	}

	return PrescanResult{BalancedBracketsPerMinute: bpm, PeakSimultaneousArrows: peak}
}

// resolveBracketMethod implements spec §4.3's determination: UseDefault just
// returns the configured default; ChooseDynamically pre-scans the chart and
// picks NoBrackets / Aggressive / Balanced by threshold.
func resolveBracketMethod(rows []chart.Row, g *stepgraph.Graph, cfg cost.ExpressedConfig) cost.BracketParsingMethod {
	if cfg.BracketParsingDetermination == cost.UseDefault {
		return cfg.DefaultBracketParsingMethod
	}

	const assumedTicksPerMinute = 48000 // 1 tick = 1/192 beat at 250bpm, a stand-in scale absent an external tempo map.
	scan := PrescanBracketRate(rows, assumedTicksPerMinute)

	maxUnbracketed := 2 // one arrow per foot, no brackets.

	switch {
	case cfg.DifficultyLevel < cfg.MinLevelForBrackets:
		return cost.NoBrackets
	case scan.BalancedBracketsPerMinute < cfg.BalancedBracketsPerMinuteForNoBrackets:
		return cost.NoBrackets
	case scan.BalancedBracketsPerMinute > cfg.BalancedBracketsPerMinuteForAggressiveBrackets:
		return cost.Aggressive
	case cfg.UseAggressiveBracketsWhenMoreSimultaneousNotesThanCanBeCoveredWithoutBrackets && scan.PeakSimultaneousArrows > maxUnbracketed:
		return cost.Aggressive
	default:
		return cost.Balanced
	}
}
