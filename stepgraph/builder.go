package stepgraph

import (
	"fmt"

	"github.com/katalvlaran/padstep/internal/graphstore"
	"github.com/katalvlaran/padstep/pad"
	"github.com/katalvlaran/padstep/step"
)

// kindIndex looks a Kind back up by the fields that determine it, so the
// builder can go from "I want a Normal/Single/NewArrow step" to its KindID
// without a linear scan of step.AllKinds on every candidate.
type kindKey struct {
	posture step.PostureFamily
	form    step.BracketForm
	heelRel step.LaneRelation
	toeRel  step.LaneRelation
	acting  step.Portion
}

var kindIndex map[kindKey]step.Kind

func init() {
	kindIndex = make(map[kindKey]step.Kind, step.Count())
	for _, k := range step.AllKinds {
		kindIndex[kindKeyOf(k)] = k
	}
}

func kindKeyOf(k step.Kind) kindKey {
	key := kindKey{posture: k.Posture, form: k.Form}
	switch k.Form {
	case step.FormHeelToe:
		key.heelRel, key.toeRel = k.HeelRelation, k.ToeRelation
	case step.FormOneArrow:
		key.heelRel, key.acting = k.HeelRelation, k.ActingPortion
	default: // FormSingle
		key.heelRel = k.HeelRelation
	}

	return key
}

func lookupKind(posture step.PostureFamily, form step.BracketForm, heelRel, toeRel step.LaneRelation, acting step.Portion) (step.Kind, bool) {
	key := kindKey{posture: posture, form: form}
	switch form {
	case step.FormHeelToe:
		key.heelRel, key.toeRel = heelRel, toeRel
	case step.FormOneArrow:
		key.heelRel, key.acting = heelRel, acting
	default:
		key.heelRel = heelRel
	}
	k, ok := kindIndex[key]

	return k, ok
}

// moveCandidate is one way a single foot could act on a link: the step kind
// it expresses, under which action, landing its acting portion(s) on which
// lane(s) with which resulting arrow state.
type moveCandidate struct {
	kind        step.Kind
	action      step.Action
	heel        FootPortionState
	toe         FootPortionState
	heelActs    bool
	toeActs     bool
}

// footEvent is everything one foot could do on a single transition: stay put,
// release whatever it is holding, or perform one moveCandidate.
type footEvent struct {
	release bool // releases every currently-Held portion of this foot
	move    *moveCandidate
}

// Build exhaustively enumerates every reachable (state, orientation) node
// and its outgoing links from p's starting positions (spec §4.1 C3).
func Build(p *pad.Pad, opts ...BuildOption) (*Graph, error) {
	if p == nil {
		return nil, ErrNilPad
	}
	cfg := defaultBuildConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	store := graphstore.NewGraph()
	byKey := make(map[string]graphstore.NodeID)
	g := &Graph{store: store, pad: p, byKey: byKey}

	var worklist []NodeState
	intern := func(s NodeState) (graphstore.NodeID, error) {
		if id, ok := byKey[s.Key()]; ok {
			return id, nil
		}
		if len(byKey) >= cfg.maxNodes {
			return "", ErrNodeLimitReached
		}
		id := graphstore.NodeID(fmt.Sprintf("n%d", len(byKey)))
		if err := store.AddNode(id, s); err != nil {
			return "", err
		}
		byKey[s.Key()] = id
		worklist = append(worklist, s)

		return id, nil
	}

	g.startTiers = make([][]graphstore.NodeID, p.StartingTierCount())
	for tier := 0; tier < p.StartingTierCount(); tier++ {
		positions := p.StartingTier(tier)
		ids := make([]graphstore.NodeID, len(positions))
		for i, pos := range positions {
			s := NodeState{
				Feet: [2][2]FootPortionState{
					{ {Lane: pos.Left, State: step.Resting}, {Lane: pos.Left, State: step.Resting} },
					{ {Lane: pos.Right, State: step.Resting}, {Lane: pos.Right, State: step.Resting} },
				},
				Orientation: step.Normal,
			}
			id, err := intern(s)
			if err != nil {
				return nil, err
			}
			ids[i] = id
		}
		g.startTiers[tier] = ids
	}

	for len(worklist) > 0 {
		n := worklist[0]
		worklist = worklist[1:]
		fromID := byKey[n.Key()]

		leftEvents := footEvents(step.Left, n, p, cfg)
		rightEvents := footEvents(step.Right, n, p, cfg)

		for _, le := range leftEvents {
			for _, re := range rightEvents {
				detail, next, ok := combine(n, le, re)
				if !ok {
					continue
				}
				toID, err := intern(next)
				if err != nil {
					return nil, err
				}
				if _, err := store.AddLink(fromID, toID, detail); err != nil {
					return nil, err
				}
			}
		}
	}

	return g, nil
}

// footEvents enumerates every candidate action foot f can take from state n,
// including doing nothing and releasing whatever it holds.
func footEvents(f step.Foot, n NodeState, p *pad.Pad, cfg buildConfig) []footEvent {
	events := []footEvent{{}} // the zero value: neither release nor move — "no action".

	heel, toe := n.Feet[f][step.Heel], n.Feet[f][step.Toe]
	if heel.State == step.Held || toe.State == step.Held {
		events = append(events, footEvent{release: true})
	}

	other := n.Feet[f.Other()][step.Heel]
	events = append(events, moveEvents(f, heel, toe, other.Lane, p, cfg)...)

	return events
}

// moveEvents enumerates every kinematically legal moveCandidate for foot f,
// currently resting its heel at heel.Lane and toe at toe.Lane, given the
// other foot's (heel) lane otherLane.
func moveEvents(f step.Foot, heel, toe FootPortionState, otherLane int, p *pad.Pad, cfg buildConfig) []footEvent {
	var out []footEvent
	n := p.LaneCount()
	pf := pad.Foot(f)

	postureOK := func(posture step.PostureFamily, newLane int) bool {
		switch posture {
		case step.PostureNormal:
			return p.NormalPair(pf, newLane, otherLane)
		case step.PostureCrossoverFront:
			return p.CrossoverFront(pf, newLane, otherLane)
		case step.PostureCrossoverBehind:
			return p.CrossoverBehind(pf, newLane, otherLane)
		case step.PostureInvertFront, step.PostureInvertBack:
			return p.Inverted(pf, newLane, otherLane)
		case step.PostureStretch:
			return p.NormalPair(pf, newLane, otherLane) && p.TravelDistance(heel.Lane, newLane) > cfg.stretchDistance
		default:
			return false
		}
	}

	relationOK := func(rel step.LaneRelation, curLane, newLane int) bool {
		switch rel {
		case step.SameArrow:
			return newLane == curLane
		case step.NewArrow:
			return newLane != curLane && p.ValidNextArrow(curLane, newLane)
		case step.FootswapArrow:
			return newLane == otherLane
		default:
			return false
		}
	}

	actionResult := func(action step.Action) step.ArrowState {
		if action == step.Hold {
			return step.Held
		}

		return step.Resting
	}

	// FormSingle: heel moves alone; toe mirrors heel's destination, matching
	// the invariant that a non-bracketing foot's two portions always agree
	// (there is no independent toe state to track outside a bracket).
	for _, posture := range allPosturesLocal() {
		for _, rel := range allRelationsLocal() {
			k, ok := lookupKind(posture, step.FormSingle, rel, step.SameArrow, step.Heel)
			if !ok {
				continue
			}
			for newLane := 0; newLane < n; newLane++ {
				if !relationOK(rel, heel.Lane, newLane) || !postureOK(posture, newLane) {
					continue
				}
				for _, action := range []step.Action{step.Tap, step.Hold} {
					st := actionResult(action)
					out = append(out, footEvent{move: &moveCandidate{
						kind: k, action: action,
						heel: FootPortionState{Lane: newLane, State: st},
						toe:  FootPortionState{Lane: newLane, State: st},
						heelActs: true, toeActs: false,
					}})
				}
			}
		}
	}

	// FormHeelToe: both portions move independently within maxBracketSeparation
	// of their own current lane (spec §4.1 Performance).
	sep := p.MaxBracketSeparation()
	for _, posture := range bracketPosturesLocal() {
		for _, heelRel := range allRelationsLocal() {
			for _, toeRel := range allRelationsLocal() {
				k, ok := lookupKind(posture, step.FormHeelToe, heelRel, toeRel, step.Heel)
				if !ok {
					continue
				}
				for dh := -sep; dh <= sep; dh++ {
					newHeel := heel.Lane + dh
					if newHeel < 0 || newHeel >= n || !relationOK(heelRel, heel.Lane, newHeel) {
						continue
					}
					for dt := -sep; dt <= sep; dt++ {
						newToe := toe.Lane + dt
						if newToe < 0 || newToe >= n || !relationOK(toeRel, toe.Lane, newToe) {
							continue
						}
						if !p.BracketableHeelWith(pf, newHeel, newToe) || !p.BracketableToeWith(pf, newHeel, newToe) {
							continue
						}
						if !postureOK(posture, newHeel) {
							continue
						}
						for _, action := range []step.Action{step.Tap, step.Hold} {
							st := actionResult(action)
							out = append(out, footEvent{move: &moveCandidate{
								kind: k, action: action,
								heel: FootPortionState{Lane: newHeel, State: st},
								toe:  FootPortionState{Lane: newToe, State: st},
								heelActs: true, toeActs: true,
							}})
						}
					}
				}
			}
		}
	}

	// FormOneArrow: one portion moves, the other stays exactly where it is.
	for _, posture := range oneArrowPosturesLocal() {
		for _, acting := range []step.Portion{step.Heel, step.Toe} {
			for _, rel := range allRelationsLocal() {
				k, ok := lookupKind(posture, step.FormOneArrow, rel, step.SameArrow, acting)
				if !ok {
					continue
				}
				curLane, otherPortionLane := heel.Lane, toe.Lane
				if acting == step.Toe {
					curLane, otherPortionLane = toe.Lane, heel.Lane
				}
				for dl := -sep; dl <= sep; dl++ {
					newLane := curLane + dl
					if newLane < 0 || newLane >= n || !relationOK(rel, curLane, newLane) {
						continue
					}
					bracketable := p.BracketableHeelWith(pf, newLane, otherPortionLane) || p.BracketableHeelWith(pf, otherPortionLane, newLane) ||
						p.BracketableToeWith(pf, newLane, otherPortionLane) || p.BracketableToeWith(pf, otherPortionLane, newLane)
					if !bracketable {
						continue
					}
					if !postureOK(posture, newLane) {
						continue
					}
					for _, action := range []step.Action{step.Tap, step.Hold} {
						st := actionResult(action)
						mc := &moveCandidate{kind: k, action: action}
						if acting == step.Heel {
							mc.heel = FootPortionState{Lane: newLane, State: st}
							mc.toe = toe
							mc.heelActs, mc.toeActs = true, false
						} else {
							mc.toe = FootPortionState{Lane: newLane, State: st}
							mc.heel = heel
							mc.heelActs, mc.toeActs = false, true
						}
						out = append(out, footEvent{move: mc})
					}
				}
			}
		}
	}

	return out
}

func allPosturesLocal() []step.PostureFamily {
	return []step.PostureFamily{
		step.PostureNormal, step.PostureCrossoverFront, step.PostureCrossoverBehind,
		step.PostureInvertFront, step.PostureInvertBack, step.PostureStretch,
	}
}

func bracketPosturesLocal() []step.PostureFamily {
	return []step.PostureFamily{step.PostureNormal, step.PostureCrossoverFront, step.PostureCrossoverBehind}
}

func oneArrowPosturesLocal() []step.PostureFamily {
	return []step.PostureFamily{step.PostureNormal, step.PostureCrossoverFront}
}

func allRelationsLocal() []step.LaneRelation {
	return []step.LaneRelation{step.SameArrow, step.NewArrow, step.FootswapArrow}
}

// combine merges one foot's event with the other's into a full link plus
// resulting node state, rejecting combinations that are not kinematically
// coherent together (spec §4.1 invariants).
func combine(n NodeState, le, re footEvent) (LinkDetail, NodeState, bool) {
	if le.move == nil && re.move == nil && !le.release && !re.release {
		return LinkDetail{}, NodeState{}, false // nothing happens: not a link.
	}

	next := n
	var detail LinkDetail

	applyFoot := func(f step.Foot, ev footEvent) step.PostureFamily {
		switch {
		case ev.release:
			for p := step.Heel; p <= step.Toe; p++ {
				fp := next.Feet[f][p]
				if fp.State == step.Held {
					next.Feet[f][p] = FootPortionState{Lane: fp.Lane, State: step.Resting}
					detail.Portions[f][p] = LinkPortion{Valid: true, Action: step.Release}
				}
			}

			return step.PostureNormal
		case ev.move != nil:
			mc := ev.move
			if mc.heelActs {
				next.Feet[f][step.Heel] = mc.heel
				detail.Portions[f][step.Heel] = LinkPortion{Valid: true, KindID: mc.kind.ID, Action: mc.action}
			}
			if mc.toeActs {
				next.Feet[f][step.Toe] = mc.toe
				detail.Portions[f][step.Toe] = LinkPortion{Valid: true, KindID: mc.kind.ID, Action: mc.action}
			}
			if !mc.heelActs && !mc.toeActs {
				// defensive: every moveCandidate built above sets at least one.
				return step.PostureNormal
			}

			return mc.kind.Posture
		default:
			return step.PostureNormal
		}
	}

	leftPosture := applyFoot(step.Left, le)
	rightPosture := applyFoot(step.Right, re)

	// Resolve the resulting heel/heel collision: two feet resting on the same
	// lane is only coherent when one of the moves that produced it is an
	// intentional footswap (spec §4.1 invariant "Footswaps produce a
	// resulting state in which both feet's Heel portion reference the same
	// lane").
	if next.Feet[step.Left][step.Heel].Lane == next.Feet[step.Right][step.Heel].Lane {
		leftSwap := le.move != nil && le.move.heelActs && le.move.kind.IsFootSwap(step.Heel)
		rightSwap := re.move != nil && re.move.heelActs && re.move.kind.IsFootSwap(step.Heel)
		if !leftSwap && !rightSwap {
			return LinkDetail{}, NodeState{}, false
		}
	}

	detail.Posture = resultingPosture(leftPosture, rightPosture)
	next.Orientation = resultingOrientation(n.Orientation, leftPosture, rightPosture)

	return detail, next, true
}

// resultingPosture reports the link's overall posture: whichever acting
// foot's posture is furthest from Normal wins, since that is the posture that
// drives cost/orientation classification for the step as a whole.
func resultingPosture(left, right step.PostureFamily) step.PostureFamily {
	if left.Tier() >= right.Tier() {
		return left
	}

	return right
}

// resultingOrientation implements the "orientation changes monotonically
// along posture families" invariant: an invert-family move enters (or holds)
// the matching inverted orientation; any other posture returns the body to
// Normal. When both feet move with conflicting postures in the same link
// (only possible with unusual pad geometry), invert wins.
func resultingOrientation(cur step.Orientation, left, right step.PostureFamily) step.Orientation {
	for _, p := range [2]step.PostureFamily{left, right} {
		switch p {
		case step.PostureInvertFront:
			return step.InvertedClockwise
		case step.PostureInvertBack:
			return step.InvertedCounterClockwise
		}
	}

	return step.Normal
}
