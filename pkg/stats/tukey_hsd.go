package stats

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TukeyHSDTest is the closed-form Tukey honestly-significant-difference
// procedure over paired observations, built on the residual variance of
// the two-way layout.
type TukeyHSDTest struct {
	nSystems    int
	nTopics     int
	systemMeans []float64
	residualVar float64
	tStats      *mat.Dense
	pValues     *mat.Dense
	effectSizes *mat.Dense
	// t-distribution scaled by sqrt(V_E/n), used for margins of error.
	scaledTDist distuv.StudentsT
}

// TukeyHSDFromTupledSamples computes the test for rows of per-topic
// scores, one column per system.
func TukeyHSDFromTupledSamples(samples [][]float64, nSystems int) (*TukeyHSDTest, error) {
	if err := checkTupledSamples(samples, nSystems); err != nil {
		return nil, err
	}

	layout := newTwoWayLayout(samples, nSystems)
	nTopics := float64(len(samples))
	freedom := (float64(nSystems) - 1.0) * (nTopics - 1.0)
	residualVar := layout.residualVariation / freedom
	if residualVar == 0.0 {
		return nil, &NumericError{msg: "the residual variance is zero"}
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: freedom}
	scale := math.Sqrt(residualVar / nTopics)
	effectScale := math.Sqrt(residualVar)

	tStats := mat.NewDense(nSystems, nSystems, nil)
	pValues := mat.NewDense(nSystems, nSystems, nil)
	effectSizes := mat.NewDense(nSystems, nSystems, nil)
	for i := 0; i < nSystems; i++ {
		for j := i + 1; j < nSystems; j++ {
			diff := layout.systemMeans[i] - layout.systemMeans[j]
			tStat := diff / scale
			pValue := tDist.Survival(math.Abs(tStat)) * 2.0 // two-tailed
			effect := diff / effectScale
			tStats.Set(i, j, tStat)
			tStats.Set(j, i, -tStat)
			pValues.Set(i, j, pValue)
			pValues.Set(j, i, pValue)
			effectSizes.Set(i, j, effect)
			effectSizes.Set(j, i, -effect)
		}
	}

	return &TukeyHSDTest{
		nSystems:    nSystems,
		nTopics:     len(samples),
		systemMeans: layout.systemMeans,
		residualVar: residualVar,
		tStats:      tStats,
		pValues:     pValues,
		effectSizes: effectSizes,
		scaledTDist: distuv.StudentsT{Mu: 0, Sigma: scale, Nu: freedom},
	}, nil
}

// NSystems returns the number of systems.
func (t *TukeyHSDTest) NSystems() int {
	return t.nSystems
}

// NTopics returns the number of topics.
func (t *TukeyHSDTest) NTopics() int {
	return t.nTopics
}

// SystemMeans returns the mean score of each system.
func (t *TukeyHSDTest) SystemMeans() []float64 {
	out := make([]float64, len(t.systemMeans))
	copy(out, t.systemMeans)
	return out
}

// ResidualVariance returns V_E from the two-way layout.
func (t *TukeyHSDTest) ResidualVariance() float64 {
	return t.residualVar
}

// TStat returns (mean_i - mean_j) / sqrt(V_E/n).
func (t *TukeyHSDTest) TStat(i, j int) (float64, error) {
	if err := t.checkIndices(i, j); err != nil {
		return 0, err
	}
	return t.tStats.At(i, j), nil
}

// PValue returns the two-tailed probability for the pair (i, j).
func (t *TukeyHSDTest) PValue(i, j int) (float64, error) {
	if err := t.checkIndices(i, j); err != nil {
		return 0, err
	}
	return t.pValues.At(i, j), nil
}

// EffectSize returns (mean_i - mean_j) / sqrt(V_E).
func (t *TukeyHSDTest) EffectSize(i, j int) (float64, error) {
	if err := t.checkIndices(i, j); err != nil {
		return 0, err
	}
	return t.effectSizes.At(i, j), nil
}

// EffectSizes returns the S x S antisymmetric effect-size matrix with
// an exactly zero diagonal.
func (t *TukeyHSDTest) EffectSizes() *mat.Dense {
	return mat.DenseCopyOf(t.effectSizes)
}

// MarginOfError at a (1 - alpha) confidence level.
func (t *TukeyHSDTest) MarginOfError(alpha float64) (float64, error) {
	if err := checkAlpha(alpha); err != nil {
		return 0, err
	}
	return t.scaledTDist.Quantile(1.0 - alpha/2.0), nil
}

// ConfidenceIntervals returns a (low, high) interval per system mean at
// a (1 - alpha) confidence level.
func (t *TukeyHSDTest) ConfidenceIntervals(alpha float64) ([][2]float64, error) {
	moe, err := t.MarginOfError(alpha)
	if err != nil {
		return nil, err
	}
	intervals := make([][2]float64, len(t.systemMeans))
	for i, mean := range t.systemMeans {
		intervals[i] = [2]float64{mean - moe, mean + moe}
	}
	return intervals, nil
}

func (t *TukeyHSDTest) checkIndices(i, j int) error {
	if i < 0 || i >= t.nSystems || j < 0 || j >= t.nSystems {
		return &InputError{msg: "the system index is out of range"}
	}
	if i == j {
		return &InputError{msg: "the indices must be different"}
	}
	return nil
}
