package chart

import "sort"

// Rows groups a flat, unsorted event stream into time-ordered Rows (events
// sharing a Position form one Row), then sorts each Row's events by Lane for
// deterministic downstream iteration (spec §4.3 "Row construction").
func Rows(events []Event) []Row {
	byPos := make(map[int64][]Event, len(events))
	for _, e := range events {
		byPos[e.Position] = append(byPos[e.Position], e)
	}

	positions := make([]int64, 0, len(byPos))
	for pos := range byPos {
		positions = append(positions, pos)
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i] < positions[j] })

	rows := make([]Row, 0, len(positions))
	for _, pos := range positions {
		evs := byPos[pos]
		sort.Slice(evs, func(i, j int) bool { return evs[i].Lane < evs[j].Lane })
		rows = append(rows, Row{Position: pos, Events: evs})
	}

	return rows
}

// Split partitions a Row's events into releases, mines, and steps
// (spec §4.3: "Split a row into (releases, mines, steps)"). A HoldEnd event
// is a release; a Mine is a mine; everything else (Tap, HoldStart, Lift,
// Fake, RollEvent) is a step.
func (r Row) Split() (releases, mines, steps []Event) {
	for _, e := range r.Events {
		switch e.Kind {
		case HoldEnd:
			releases = append(releases, e)
		case Mine:
			mines = append(mines, e)
		default:
			steps = append(steps, e)
		}
	}

	return releases, mines, steps
}

// Lanes returns the lanes touched by a set of events, in the order given.
func Lanes(events []Event) []int {
	lanes := make([]int, len(events))
	for i, e := range events {
		lanes[i] = e.Lane
	}

	return lanes
}
