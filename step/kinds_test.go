package step

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllKindsDeterministicIDs(t *testing.T) {
	require.NotEmpty(t, AllKinds)
	for i, k := range AllKinds {
		assert.Equal(t, i, k.ID)
	}
	assert.Equal(t, 18+27+12, Count())
}

func TestByIDRoundTrip(t *testing.T) {
	k, err := ByID(0)
	require.NoError(t, err)
	assert.Equal(t, PostureNormal, k.Posture)
	assert.Equal(t, FormSingle, k.Form)

	_, err = ByID(-1)
	assert.ErrorIs(t, err, ErrUnknownKind)
	_, err = ByID(Count())
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestSingleKindOnlyActsOnHeel(t *testing.T) {
	for _, k := range AllKinds {
		if k.Form != FormSingle {
			continue
		}
		assert.True(t, k.PortionActs(Heel))
		assert.False(t, k.PortionActs(Toe))
		assert.False(t, k.IsBracket())
	}
}

func TestHeelToeKindActsOnBothPortionsIndependently(t *testing.T) {
	found := false
	for _, k := range AllKinds {
		if k.Form != FormHeelToe {
			continue
		}
		found = true
		assert.True(t, k.IsBracket())
		assert.True(t, k.PortionActs(Heel))
		assert.True(t, k.PortionActs(Toe))
	}
	assert.True(t, found)
}

func TestOneArrowKindRestingPortionIsSameArrow(t *testing.T) {
	for _, k := range AllKinds {
		if k.Form != FormOneArrow {
			continue
		}
		resting := Toe
		if k.ActingPortion == Toe {
			resting = Heel
		}
		assert.False(t, k.PortionActs(resting))
		assert.Equal(t, SameArrow, k.RelationOf(resting))
		assert.True(t, k.IsBracket())
	}
}

func TestFootswapDetection(t *testing.T) {
	k := Kind{Form: FormSingle, HeelRelation: FootswapArrow}
	assert.True(t, k.IsFootSwap(Heel))
	assert.False(t, k.IsFootSwap(Toe))
}

func TestPostureTierOrdering(t *testing.T) {
	assert.Less(t, PostureNormal.Tier(), PostureStretch.Tier())
	assert.Less(t, PostureStretch.Tier(), PostureCrossoverFront.Tier())
	assert.Less(t, PostureCrossoverFront.Tier(), PostureInvertFront.Tier())
}
