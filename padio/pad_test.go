package padio_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/padstep/padio"
)

const fourLaneDoc = `{
  "arrowData": [
    {"x":0,"y":1,"validNextArrows":[false,true,true,true],
     "bracketablePairingsOtherHeel":[[false,true,true,false],[false,true,true,false]],
     "bracketablePairingsOtherToe":[[false,true,true,false],[false,true,true,false]],
     "otherFootPairings":[[false,false,false,true],[false,false,false,true]],
     "otherFootPairingsOtherFootCrossoverFront":[[false,false,false,false],[false,false,false,false]],
     "otherFootPairingsOtherFootCrossoverBehind":[[false,false,false,false],[false,false,false,false]],
     "otherFootPairingsInverted":[[false,false,false,false],[false,false,false,false]]},
    {"x":1,"y":0,"validNextArrows":[true,false,true,true],
     "bracketablePairingsOtherHeel":[[true,false,true,true],[true,false,true,true]],
     "bracketablePairingsOtherToe":[[true,false,true,true],[true,false,true,true]],
     "otherFootPairings":[[false,false,true,true],[false,false,true,true]],
     "otherFootPairingsOtherFootCrossoverFront":[[false,false,false,false],[false,false,false,false]],
     "otherFootPairingsOtherFootCrossoverBehind":[[false,false,false,false],[false,false,false,false]],
     "otherFootPairingsInverted":[[false,false,false,false],[false,false,false,false]]},
    {"x":1,"y":2,"validNextArrows":[true,true,false,true],
     "bracketablePairingsOtherHeel":[[true,true,false,true],[true,true,false,true]],
     "bracketablePairingsOtherToe":[[true,true,false,true],[true,true,false,true]],
     "otherFootPairings":[[false,true,false,true],[false,true,false,true]],
     "otherFootPairingsOtherFootCrossoverFront":[[false,false,false,false],[false,false,false,false]],
     "otherFootPairingsOtherFootCrossoverBehind":[[false,false,false,false],[false,false,false,false]],
     "otherFootPairingsInverted":[[false,false,false,false],[false,false,false,false]]},
    {"x":2,"y":1,"validNextArrows":[true,true,true,false],
     "bracketablePairingsOtherHeel":[[false,true,true,false],[false,true,true,false]],
     "bracketablePairingsOtherToe":[[false,true,true,false],[false,true,true,false]],
     "otherFootPairings":[[true,false,false,false],[true,false,false,false]],
     "otherFootPairingsOtherFootCrossoverFront":[[false,false,false,false],[false,false,false,false]],
     "otherFootPairingsOtherFootCrossoverBehind":[[false,false,false,false],[false,false,false,false]],
     "otherFootPairingsInverted":[[false,false,false,false],[false,false,false,false]]}
  ],
  "startingPositions": [[{"leftLane":0,"rightLane":3}]],
  "yTravelDistanceCompensation": 0.5
}`

func TestLoadPadParsesFourLaneDocument(t *testing.T) {
	p, err := padio.LoadPad(strings.NewReader(fourLaneDoc))
	require.NoError(t, err)
	assert.Equal(t, 4, p.LaneCount())
	assert.Equal(t, 1, p.StartingTierCount())
}

func TestLoadPadRejectsMalformedJSON(t *testing.T) {
	_, err := padio.LoadPad(strings.NewReader(`{"arrowData":`))
	assert.Error(t, err)
}

func TestLoadPadRejectsUnknownFields(t *testing.T) {
	_, err := padio.LoadPad(strings.NewReader(`{"arrowData":[],"bogusField":1}`))
	assert.Error(t, err)
}

func TestLoadPerformedConfigParsesBasicFields(t *testing.T) {
	doc := `{"facing":{"maxInwardPercent":0.3,"maxOutwardPercent":0.3,"weight":1}}`
	cfg, err := padio.LoadPerformedConfig(strings.NewReader(doc))
	require.NoError(t, err)
	assert.InDelta(t, 0.3, cfg.Facing.MaxInwardPercent, 1e-9)
}
