// kinds.go — canonical step-kind enumeration (spec §3 "Step kinds").
//
// This is the single source of truth for the closed vocabulary of step
// kinds: the cross-product of posture family x bracket form x per-portion
// lane relation described in spec §3, generated once at package init into
// AllKinds rather than hand-listed, the way the teacher's letters_spec.go
// generates its glyph table from a small set of combinators instead of
// hand-writing every vertex.
//
// Determinism: AllKinds is built by three fixed nested loops in a fixed
// order; Kind.ID is the build-order index and never changes across runs.
// Do not reorder the loops below without treating it as a breaking change —
// graph links reference kinds by ID, and tests pin generation order.
package step

// Kind is one member of the closed step-kind enumeration. Its fields are the
// static kinematic tags spec §3 calls out; there is no subtyping — every
// predicate a caller needs is a method on this single struct.
type Kind struct {
	ID   int
	Name string

	Posture PostureFamily
	Form    BracketForm

	// HeelRelation is always meaningful. ToeRelation is meaningful only for
	// FormHeelToe. ActingPortion is meaningful only for FormOneArrow (it says
	// which portion is the one that moves; the other rests in place).
	HeelRelation  LaneRelation
	ToeRelation   LaneRelation
	ActingPortion Portion
}

// IsBracket reports whether this kind involves two simultaneous contacts of
// the same foot (spec §3 "Bracket form").
func (k Kind) IsBracket() bool {
	return k.Form == FormHeelToe || k.Form == FormOneArrow
}

// RelationOf returns the lane relation that applies to portion p under this
// kind. For FormSingle, Toe has no relation (it is unused) and RelationOf
// returns SameArrow as a harmless default — callers must gate on IsBracket
// or Form before trusting Toe's relation.
func (k Kind) RelationOf(p Portion) LaneRelation {
	switch k.Form {
	case FormHeelToe:
		if p == Heel {
			return k.HeelRelation
		}

		return k.ToeRelation
	case FormOneArrow:
		if p == k.ActingPortion {
			return k.HeelRelation
		}

		return SameArrow // the resting portion never moves.
	default: // FormSingle
		if p == Toe {
			return SameArrow // Toe is unused.
		}

		return k.HeelRelation
	}
}

// PortionActs reports whether portion p makes contact at all under this
// kind. FormSingle only ever acts on Heel; FormOneArrow only acts on
// ActingPortion; FormHeelToe acts on both.
func (k Kind) PortionActs(p Portion) bool {
	switch k.Form {
	case FormSingle:
		return p == Heel
	case FormOneArrow:
		return p == k.ActingPortion
	default: // FormHeelToe
		return true
	}
}

// IsFootSwap reports whether portion p performs a footswap under this kind.
func (k Kind) IsFootSwap(p Portion) bool {
	return k.PortionActs(p) && k.RelationOf(p) == FootswapArrow
}

// IsCrossover reports whether this kind's posture is a crossover family.
func (k Kind) IsCrossover() bool { return k.Posture.IsCrossover() }

// IsInvert reports whether this kind's posture is an invert family.
func (k Kind) IsInvert() bool { return k.Posture.IsInvert() }

// IsStretch reports whether this kind's posture is the stretch family.
func (k Kind) IsStretch() bool { return k.Posture == PostureStretch }

// bracketPostures is the subset of posture families in which a bracket (two
// simultaneous contacts, or one-arrow-while-other-rests) is kinematically
// sensible. Inverted brackets are not modelled: by the time the body has
// rotated past crossover, a single foot bracketing two arrows stops being a
// physically coherent pattern in the source material this vocabulary is
// drawn from.
var bracketPostures = []PostureFamily{PostureNormal, PostureCrossoverFront, PostureCrossoverBehind}

// oneArrowPostures is the (smaller) subset of posture families in which a
// one-arrow bracket is enumerated: Normal and the forward crossover, the two
// postures where a foot can plausibly pin one arrow while its other portion
// reaches a second.
var oneArrowPostures = []PostureFamily{PostureNormal, PostureCrossoverFront}

// allPostures enumerates every posture family, used for the Single form
// (ordinary one-portion steps are legal in every posture, including invert
// and stretch).
var allPostures = []PostureFamily{
	PostureNormal, PostureCrossoverFront, PostureCrossoverBehind,
	PostureInvertFront, PostureInvertBack, PostureStretch,
}

var allRelations = []LaneRelation{SameArrow, NewArrow, FootswapArrow}
var allPortions = []Portion{Heel, Toe}

// AllKinds is the closed, ordered enumeration of every step kind. Index i
// has Kind.ID == i.
var AllKinds []Kind

// byID indexes AllKinds for O(1) lookup.
var byID map[int]Kind

func init() {
	var kinds []Kind
	next := 0
	add := func(k Kind) {
		k.ID = next
		kinds = append(kinds, k)
		next++
	}

	// Single: one posture x one relation. 6 x 3 = 18.
	for _, posture := range allPostures {
		for _, rel := range allRelations {
			add(Kind{
				Name:         posture.String() + "_Single_" + rel.String(),
				Posture:      posture,
				Form:         FormSingle,
				HeelRelation: rel,
			})
		}
	}

	// HeelToe: bracket posture x heel relation x toe relation. 3 x 3 x 3 = 27.
	for _, posture := range bracketPostures {
		for _, heelRel := range allRelations {
			for _, toeRel := range allRelations {
				add(Kind{
					Name:         posture.String() + "_HeelToe_" + heelRel.String() + "_" + toeRel.String(),
					Posture:      posture,
					Form:         FormHeelToe,
					HeelRelation: heelRel,
					ToeRelation:  toeRel,
				})
			}
		}
	}

	// OneArrow: one-arrow posture x acting portion x relation. 2 x 2 x 3 = 12.
	for _, posture := range oneArrowPostures {
		for _, portion := range allPortions {
			for _, rel := range allRelations {
				add(Kind{
					Name:          posture.String() + "_OneArrow_" + portion.String() + "_" + rel.String(),
					Posture:       posture,
					Form:          FormOneArrow,
					ActingPortion: portion,
					HeelRelation:  rel,
				})
			}
		}
	}

	AllKinds = kinds
	byID = make(map[int]Kind, len(kinds))
	for _, k := range kinds {
		byID[k.ID] = k
	}
}

// ByID returns the Kind with the given ID, or ErrUnknownKind.
func ByID(id int) (Kind, error) {
	k, ok := byID[id]
	if !ok {
		return Kind{}, ErrUnknownKind
	}

	return k, nil
}

// Count returns the number of kinds in the closed enumeration (57, per the
// three generation loops above — spec §3 describes "approximately 60").
func Count() int { return len(AllKinds) }
