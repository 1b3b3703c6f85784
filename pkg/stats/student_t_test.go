package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sakaiPairs is Table 5.1 from Sakai's book on IR evaluation, the
// standard worked example for paired significance testing.
var sakaiPairs = []Pair{
	{0.70, 0.50}, {0.30, 0.10}, {0.20, 0.00}, {0.60, 0.20},
	{0.40, 0.40}, {0.40, 0.30}, {0.00, 0.00}, {0.70, 0.50},
	{0.10, 0.30}, {0.30, 0.30}, {0.50, 0.40}, {0.40, 0.40},
	{0.00, 0.10}, {0.60, 0.40}, {0.50, 0.20}, {0.30, 0.10},
	{0.10, 0.10}, {0.50, 0.60}, {0.20, 0.30}, {0.10, 0.20},
}

func TestStudentTTestGoldenValues(t *testing.T) {
	result, err := StudentTTestFromPairedSamples(sakaiPairs)
	require.NoError(t, err)

	assert.Equal(t, 20, result.NTopics())
	assert.InDelta(t, 0.0750, result.Mean(), 1e-4)
	assert.InDelta(t, 0.0251, result.Variance(), 1e-4)
	assert.InDelta(t, 0.473, result.EffectSize(), 1e-3)
	assert.InDelta(t, 2.116, result.TStat(), 1e-3)
	assert.InDelta(t, 0.048, result.PValue(), 1e-3)

	moe95, err := result.MarginOfError(0.05)
	require.NoError(t, err)
	assert.InDelta(t, 0.0742, moe95, 1e-4)

	low, high, err := result.ConfidenceInterval(0.05)
	require.NoError(t, err)
	assert.InDelta(t, result.Mean()-moe95, low, 1e-9)
	assert.InDelta(t, result.Mean()+moe95, high, 1e-9)

	assert.True(t, result.IsSignificant(0.05))
	assert.False(t, result.IsSignificant(0.01))
}

func TestStudentTTestFromScoreMaps(t *testing.T) {
	a := map[string]float64{"q_1": 0.7, "q_2": 0.3, "q_3": 0.2}
	b := map[string]float64{"q_1": 0.5, "q_2": 0.1, "q_3": 0.0}

	result, err := StudentTTestFromScoreMaps(a, b)
	require.NoError(t, err)
	assert.Equal(t, 3, result.NTopics())
	assert.InDelta(t, 0.2, result.Mean(), 1e-9)
}

func TestStudentTTestFromScoreMapsMismatchedTopics(t *testing.T) {
	a := map[string]float64{"q_1": 0.7, "q_2": 0.3}
	b := map[string]float64{"q_1": 0.5, "q_3": 0.1}

	_, err := StudentTTestFromScoreMaps(a, b)
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
}

func TestStudentTTestTooFewSamples(t *testing.T) {
	_, err := StudentTTestFromSamples([]float64{0.1})
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
}

func TestStudentTTestZeroVariance(t *testing.T) {
	_, err := StudentTTestFromSamples([]float64{0.2, 0.2, 0.2})
	var numericErr *NumericError
	require.ErrorAs(t, err, &numericErr)
}

func TestMarginOfErrorRejectsBadAlpha(t *testing.T) {
	result, err := StudentTTestFromPairedSamples(sakaiPairs)
	require.NoError(t, err)

	for _, alpha := range []float64{0.0, -0.1, 1.5} {
		_, err := result.MarginOfError(alpha)
		var inputErr *InputError
		require.ErrorAs(t, err, &inputErr)
	}
}
