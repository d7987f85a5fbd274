// Package padio loads external JSON documents into the immutable domain
// types (pad.Pad, cost.PerformedConfig) defined by the rest of the module
// (spec §6 "External interfaces"). JSON is the one place this module
// reaches for the standard library over a third-party dependency: none of
// the corpus this module was grown from carries a schema/config-file
// library, and encoding/json's Decoder already gives strict, well-understood
// error messages for the structural validation spec §7 asks for.
package padio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/katalvlaran/padstep/cost"
	"github.com/katalvlaran/padstep/pad"
)

// arrowDocument mirrors one arrowData entry of the pad geometry file
// (spec §6). Matrices are keyed by lane, with foot-indexed fields split
// into two parallel slices to stay a flat JSON shape.
type arrowDocument struct {
	X int `json:"x"`
	Y int `json:"y"`

	ValidNextArrows []bool `json:"validNextArrows"`

	BracketablePairingsOtherHeel [2][]bool `json:"bracketablePairingsOtherHeel"`
	BracketablePairingsOtherToe  [2][]bool `json:"bracketablePairingsOtherToe"`

	OtherFootPairings                        [2][]bool `json:"otherFootPairings"`
	OtherFootPairingsOtherFootCrossoverFront  [2][]bool `json:"otherFootPairingsOtherFootCrossoverFront"`
	OtherFootPairingsOtherFootCrossoverBehind [2][]bool `json:"otherFootPairingsOtherFootCrossoverBehind"`
	OtherFootPairingsInverted                 [2][]bool `json:"otherFootPairingsInverted"`
}

type startPositionDocument struct {
	Left  int `json:"leftLane"`
	Right int `json:"rightLane"`
}

type padDocument struct {
	ArrowData                 []arrowDocument             `json:"arrowData"`
	StartingPositions         [][]startPositionDocument   `json:"startingPositions"`
	YTravelDistanceCompensation float64                   `json:"yTravelDistanceCompensation"`
}

// LoadPad decodes a pad geometry document from r and builds a validated
// *pad.Pad. Structural decode errors and pad.New's own validation errors
// both surface wrapped, so callers can errors.Is against pad's sentinels.
func LoadPad(r io.Reader) (*pad.Pad, error) {
	var doc padDocument
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("padio: decode pad document: %w", err)
	}

	n := len(doc.ArrowData)
	spec := pad.Spec{
		Lanes:               make([]pad.LaneSpec, n),
		ValidNextArrow:      make([][]bool, n),
		YTravelCompensation: doc.YTravelDistanceCompensation,
	}
	for f := 0; f < 2; f++ {
		spec.BracketableHeelWith[f] = make([][]bool, n)
		spec.BracketableToeWith[f] = make([][]bool, n)
		spec.NormalPair[f] = make([][]bool, n)
		spec.CrossoverFront[f] = make([][]bool, n)
		spec.CrossoverBehind[f] = make([][]bool, n)
		spec.Inverted[f] = make([][]bool, n)
	}

	for i, a := range doc.ArrowData {
		spec.Lanes[i] = pad.LaneSpec{X: a.X, Y: a.Y}
		spec.ValidNextArrow[i] = a.ValidNextArrows
		for f := 0; f < 2; f++ {
			spec.BracketableHeelWith[f][i] = a.BracketablePairingsOtherHeel[f]
			spec.BracketableToeWith[f][i] = a.BracketablePairingsOtherToe[f]
			spec.NormalPair[f][i] = a.OtherFootPairings[f]
			spec.CrossoverFront[f][i] = a.OtherFootPairingsOtherFootCrossoverFront[f]
			spec.CrossoverBehind[f][i] = a.OtherFootPairingsOtherFootCrossoverBehind[f]
			spec.Inverted[f][i] = a.OtherFootPairingsInverted[f]
		}
	}

	spec.StartingPositions = make([][]pad.StartPosition, len(doc.StartingPositions))
	for i, tier := range doc.StartingPositions {
		positions := make([]pad.StartPosition, len(tier))
		for j, pos := range tier {
			positions[j] = pad.StartPosition{Left: pos.Left, Right: pos.Right}
		}
		spec.StartingPositions[i] = positions
	}

	p, err := pad.New(spec)
	if err != nil {
		return nil, fmt.Errorf("padio: %w", err)
	}

	return p, nil
}

// LoadPerformedConfig decodes a PerformedChartConfig document from r. Field
// names mirror cost.PerformedConfig's Go names in camelCase, since this
// config is produced by this module's own tooling rather than an external
// legacy format (unlike the pad geometry file).
func LoadPerformedConfig(r io.Reader) (cost.PerformedConfig, error) {
	var cfg cost.PerformedConfig
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cost.PerformedConfig{}, fmt.Errorf("padio: decode performed config: %w", err)
	}

	return cfg, nil
}
