// Package stepgraph implements the Step Graph Builder (spec §4.1, C3): from
// a pad and the closed step vocabulary, it exhaustively enumerates every
// kinematically legal foot-state node and the links between them.
//
// The graph itself is backed by internal/graphstore — the same
// arena-plus-adjacency substrate the teacher's core.Graph provides — with
// stepgraph supplying the domain payloads (NodeState, LinkDetail) that
// graphstore stores opaquely. stepgraph.Graph is read-only once Build
// returns (spec §3 Lifecycle), so unlike graphstore it needs no additional
// synchronization of its own: every exported accessor only ever reads the
// maps Build populated.
package stepgraph

import (
	"errors"

	"github.com/katalvlaran/padstep/step"
)

// Sentinel errors.
var (
	ErrNilPad           = errors.New("stepgraph: pad is nil")
	ErrNodeLimitReached = errors.New("stepgraph: node limit reached before the worklist drained")
	ErrUnknownNode      = errors.New("stepgraph: unknown node ID")
	ErrUnknownLink      = errors.New("stepgraph: unknown link ID")
)

// FootPortionState is where one foot/portion rests, and in what arrow state,
// after a move (spec §3 "Graph node").
type FootPortionState struct {
	Lane  int
	State step.ArrowState
}

// NodeState is a graph node's full payload: both feet's portion states plus
// body orientation (spec §3). Two nodes are equal iff every field compares
// equal (spec §3 "Graph node" identity invariant) — see Key for the
// canonical hash used to intern nodes during Build.
type NodeState struct {
	// Feet[foot][portion].
	Feet        [2][2]FootPortionState
	Orientation step.Orientation
}

// LinkPortion is one (StepKind, FootAction, valid) entry of a link
// (spec §3 "Graph link").
type LinkPortion struct {
	Valid  bool
	KindID int
	Action step.Action
}

// LinkDetail is a link's full payload: the per-(foot,portion) triples
// (spec §3), plus the posture family the move as a whole belongs to — kept
// redundantly on the link (rather than re-derived from a KindID every time)
// because expressed/performed both need it on the hot path of cost
// computation and tie-breaking.
type LinkDetail struct {
	// Portions[foot][portion].
	Portions [2][2]LinkPortion
	Posture  step.PostureFamily
}

// footActs reports whether foot f has at least one valid acting portion.
func (d LinkDetail) footActs(f step.Foot) bool {
	return d.Portions[f][step.Heel].Valid || d.Portions[f][step.Toe].Valid
}

// IsJump reports whether both feet act, with no portion performing a
// Release (spec §3 "isJump").
func (d LinkDetail) IsJump() bool {
	if !d.footActs(step.Left) || !d.footActs(step.Right) {
		return false
	}
	for f := step.Left; f <= step.Right; f++ {
		for p := step.Heel; p <= step.Toe; p++ {
			if d.Portions[f][p].Valid && d.Portions[f][p].Action == step.Release {
				return false
			}
		}
	}

	return true
}

// IsRelease reports whether any acting portion performs a Release
// (spec §3 "isRelease").
func (d LinkDetail) IsRelease() bool {
	for f := step.Left; f <= step.Right; f++ {
		for p := step.Heel; p <= step.Toe; p++ {
			if d.Portions[f][p].Valid && d.Portions[f][p].Action == step.Release {
				return true
			}
		}
	}

	return false
}

// IsBracketStep reports whether exactly one foot acts and both of its
// portions act (spec §3 "isBracketStep").
func (d LinkDetail) IsBracketStep() bool {
	leftActs, rightActs := d.footActs(step.Left), d.footActs(step.Right)
	if leftActs == rightActs {
		return false // neither, or both (a jump) — not a lone bracket step.
	}
	f := step.Left
	if rightActs {
		f = step.Right
	}

	return d.Portions[f][step.Heel].Valid && d.Portions[f][step.Toe].Valid
}

// InvolvesBracket reports whether any acting foot's kind is a bracket form.
func (d LinkDetail) InvolvesBracket() bool {
	for f := step.Left; f <= step.Right; f++ {
		for p := step.Heel; p <= step.Toe; p++ {
			lp := d.Portions[f][p]
			if !lp.Valid {
				continue
			}
			if k, err := step.ByID(lp.KindID); err == nil && k.IsBracket() {
				return true
			}
		}
	}

	return false
}

// IsFootSwap reports whether (foot, portion) performs a footswap on this
// link.
func (d LinkDetail) IsFootSwap(f step.Foot, p step.Portion) bool {
	lp := d.Portions[f][p]
	if !lp.Valid {
		return false
	}
	k, err := step.ByID(lp.KindID)
	if err != nil {
		return false
	}

	return k.IsFootSwap(p)
}

// IsSingleStep reports whether foot f acts via a non-bracket (Single-form)
// kind on this link (spec §3 "isSingleStep").
func (d LinkDetail) IsSingleStep(f step.Foot) bool {
	if !d.Portions[f][step.Heel].Valid || d.Portions[f][step.Toe].Valid {
		return false
	}
	k, err := step.ByID(d.Portions[f][step.Heel].KindID)
	if err != nil {
		return false
	}

	return k.Form == step.FormSingle
}
