package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTukeyHSDGoldenEffectSizes(t *testing.T) {
	result, err := TukeyHSDFromTupledSamples(sakaiTupled, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, result.NSystems())
	assert.Equal(t, 20, result.NTopics())

	effects := result.EffectSizes()
	assert.InDelta(t, 0.5070, effects.At(0, 1), 1e-4)
	assert.InDelta(t, 0.6760, effects.At(0, 2), 1e-4)
	assert.InDelta(t, 0.1690, effects.At(1, 2), 1e-4)
	assert.InDelta(t, -0.5070, effects.At(1, 0), 1e-4)
	assert.InDelta(t, -0.6760, effects.At(2, 0), 1e-4)
	assert.InDelta(t, -0.1690, effects.At(2, 1), 1e-4)
	for i := 0; i < 3; i++ {
		assert.Zero(t, effects.At(i, i))
	}
}

func TestTukeyHSDPairwiseAccessors(t *testing.T) {
	result, err := TukeyHSDFromTupledSamples(sakaiTupled, 3)
	require.NoError(t, err)

	tStat, err := result.TStat(0, 1)
	require.NoError(t, err)
	reversed, err := result.TStat(1, 0)
	require.NoError(t, err)
	assert.InDelta(t, -tStat, reversed, 1e-12)

	p01, err := result.PValue(0, 1)
	require.NoError(t, err)
	p10, err := result.PValue(1, 0)
	require.NoError(t, err)
	assert.Equal(t, p01, p10)
	assert.GreaterOrEqual(t, p01, 0.0)
	assert.LessOrEqual(t, p01, 1.0)

	// The largest mean gap gets the smallest p-value.
	p02, err := result.PValue(0, 2)
	require.NoError(t, err)
	p12, err := result.PValue(1, 2)
	require.NoError(t, err)
	assert.Less(t, p02, p01)
	assert.Less(t, p01, p12)
}

func TestTukeyHSDMatchesANOVAScale(t *testing.T) {
	result, err := TukeyHSDFromTupledSamples(sakaiTupled, 3)
	require.NoError(t, err)
	anova, err := TwoWayANOVAFromTupledSamples(sakaiTupled, 3)
	require.NoError(t, err)

	assert.InDelta(t, anova.ResidualVariance(), result.ResidualVariance(), 1e-12)
	assert.InDelta(t, anova.SystemMeans()[0], result.SystemMeans()[0], 1e-12)

	moe, err := result.MarginOfError(0.05)
	require.NoError(t, err)
	anovaMoe, err := anova.MarginOfError(0.05)
	require.NoError(t, err)
	assert.InDelta(t, anovaMoe, moe, 1e-12)
}

func TestTukeyHSDIndexValidation(t *testing.T) {
	result, err := TukeyHSDFromTupledSamples(sakaiTupled, 3)
	require.NoError(t, err)

	var inputErr *InputError
	_, err = result.PValue(0, 3)
	require.ErrorAs(t, err, &inputErr)
	_, err = result.PValue(-1, 0)
	require.ErrorAs(t, err, &inputErr)
	_, err = result.PValue(1, 1)
	require.ErrorAs(t, err, &inputErr)
}
