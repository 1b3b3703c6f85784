package stats

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

const defaultNResamples = 10000

// BootstrapTest holds the outcome of a paired bootstrap test.
type BootstrapTest struct {
	nTopics     int
	nResamples  int
	randomState uint64
	mean        float64
	variance    float64
	pValue      float64
}

// NTopics returns the number of paired topics.
func (t *BootstrapTest) NTopics() int {
	return t.nTopics
}

// NResamples returns the number of resamples drawn.
func (t *BootstrapTest) NResamples() int {
	return t.nResamples
}

// RandomState returns the seed that produced the resampling stream.
// Re-running with this seed reproduces the p-value exactly.
func (t *BootstrapTest) RandomState() uint64 {
	return t.randomState
}

// Mean of the differences.
func (t *BootstrapTest) Mean() float64 {
	return t.mean
}

// Variance is the unbiased sample variance of the differences.
func (t *BootstrapTest) Variance() float64 {
	return t.variance
}

// EffectSize is mean / sqrt(variance).
func (t *BootstrapTest) EffectSize() float64 {
	return t.mean / math.Sqrt(t.variance)
}

// PValue is the two-sided bootstrap estimate.
func (t *BootstrapTest) PValue() float64 {
	return t.pValue
}

// BootstrapTester configures a bootstrap test.
//
// Default parameters:
//   - nResamples: 10000
//   - randomState: drawn fresh per invocation
type BootstrapTester struct {
	nResamples  int
	randomState *uint64
}

// NewBootstrapTester creates a tester with default parameters.
func NewBootstrapTester() *BootstrapTester {
	return &BootstrapTester{nResamples: defaultNResamples}
}

// WithNResamples sets the number of resamples.
func (bt *BootstrapTester) WithNResamples(n int) *BootstrapTester {
	bt.nResamples = n
	return bt
}

// WithRandomState pins the seed for the resampling stream.
func (bt *BootstrapTester) WithRandomState(seed uint64) *BootstrapTester {
	bt.randomState = &seed
	return bt
}

// Test runs the bootstrap on precomputed differences, estimating the
// achieved significance level of the observed t-statistic under the
// null hypothesis of zero mean difference. The samples are shifted to
// zero mean before resampling (Efron and Tibshirani's bootstrap-t), so
// the estimate converges to the parametric p-value as the resample
// count grows.
func (bt *BootstrapTester) Test(samples []float64) (*BootstrapTest, error) {
	tStat, mean, variance, err := computeTStat(samples)
	if err != nil {
		return nil, err
	}

	var randomState uint64
	if bt.randomState != nil {
		randomState = *bt.randomState
	} else {
		randomState = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(randomState, 0))

	n := len(samples)
	centered := make([]float64, n)
	for i, x := range samples {
		centered[i] = x - mean
	}

	absT := math.Abs(tStat)
	resampled := make([]float64, n)
	count := 0
	for range bt.nResamples {
		for i := range resampled {
			resampled[i] = centered[rng.IntN(n)]
		}
		if resampledExtreme(resampled, absT) {
			count++
		}
	}
	return &BootstrapTest{
		nTopics:     n,
		nResamples:  bt.nResamples,
		randomState: randomState,
		mean:        mean,
		variance:    variance,
		pValue:      float64(count) / float64(bt.nResamples),
	}, nil
}

// TestPairedSamples runs the bootstrap on per-topic differences a - b.
func (bt *BootstrapTester) TestPairedSamples(pairs []Pair) (*BootstrapTest, error) {
	return bt.Test(pairedDiffs(pairs))
}

// BootstrapTestFromPairedSamples runs a bootstrap test with the default
// parameters.
func BootstrapTestFromPairedSamples(pairs []Pair) (*BootstrapTest, error) {
	return NewBootstrapTester().TestPairedSamples(pairs)
}

// resampledExtreme reports whether the resample's t-statistic is at
// least as extreme as the observed one. A zero-variance resample has an
// undefined t-statistic; its mean is then a constant, which is extreme
// only when nonzero.
func resampledExtreme(resampled []float64, absT float64) bool {
	n := float64(len(resampled))
	m := floats.Sum(resampled) / n
	ss := 0.0
	for _, x := range resampled {
		d := x - m
		ss += d * d
	}
	if ss == 0.0 {
		return m != 0.0
	}
	t := m / math.Sqrt(ss/(n-1)/n)
	return math.Abs(t) >= absT
}
