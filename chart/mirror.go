package chart

import "github.com/katalvlaran/padstep/pad"

// Mirror returns a copy of events with every lane replaced by its mirrored
// lane on p (spec §8 testable property #4). Event order and timing are
// unchanged; only Lane is rewritten.
func Mirror(events []Event, p *pad.Pad) []Event {
	return remapLanes(events, p.MirroredLane)
}

// Flip returns a copy of events with every lane replaced by its flipped
// lane on p.
func Flip(events []Event, p *pad.Pad) []Event {
	return remapLanes(events, p.FlippedLane)
}

func remapLanes(events []Event, remap func(int) int) []Event {
	out := make([]Event, len(events))
	for i, e := range events {
		out[i] = e
		out[i].Lane = remap(e.Lane)
	}

	return out
}
