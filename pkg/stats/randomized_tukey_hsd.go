package stats

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const defaultNTrials = 10000

// RandomizedTukeyHSDTest holds pairwise p-values estimated by the
// randomization counterpart of the Tukey HSD procedure
// (Carterette, TOIS 2012).
type RandomizedTukeyHSDTest struct {
	nSystems    int
	nTopics     int
	nTrials     int
	randomState uint64
	pValues     *mat.Dense
}

// NSystems returns the number of systems.
func (t *RandomizedTukeyHSDTest) NSystems() int {
	return t.nSystems
}

// NTopics returns the number of topics.
func (t *RandomizedTukeyHSDTest) NTopics() int {
	return t.nTopics
}

// NTrials returns the number of permutation trials run.
func (t *RandomizedTukeyHSDTest) NTrials() int {
	return t.nTrials
}

// RandomState returns the seed that produced the permutation stream.
func (t *RandomizedTukeyHSDTest) RandomState() uint64 {
	return t.randomState
}

// PValue returns the estimated p-value for the pair (i, j).
func (t *RandomizedTukeyHSDTest) PValue(i, j int) (float64, error) {
	if i < 0 || i >= t.nSystems || j < 0 || j >= t.nSystems {
		return 0, &InputError{msg: "the system index is out of range"}
	}
	if i == j {
		return 0, &InputError{msg: "the indices must be different"}
	}
	return t.pValues.At(i, j), nil
}

// PValues returns the S x S symmetric p-value matrix with a zero
// diagonal.
func (t *RandomizedTukeyHSDTest) PValues() *mat.Dense {
	return mat.DenseCopyOf(t.pValues)
}

// RandomizedTukeyHSDTester configures the randomization procedure.
//
// Default parameters:
//   - nTrials: 10000
//   - randomState: drawn fresh per invocation
type RandomizedTukeyHSDTester struct {
	nSystems    int
	nTrials     int
	randomState *uint64
}

// NewRandomizedTukeyHSDTester creates a tester for the given number of
// systems with default parameters.
func NewRandomizedTukeyHSDTester(nSystems int) *RandomizedTukeyHSDTester {
	return &RandomizedTukeyHSDTester{nSystems: nSystems, nTrials: defaultNTrials}
}

// WithNTrials sets the number of permutation trials.
func (rt *RandomizedTukeyHSDTester) WithNTrials(n int) *RandomizedTukeyHSDTester {
	rt.nTrials = n
	return rt
}

// WithRandomState pins the seed for the permutation stream.
func (rt *RandomizedTukeyHSDTester) WithRandomState(seed uint64) *RandomizedTukeyHSDTester {
	rt.randomState = &seed
	return rt
}

// Test estimates, for every system pair, the fraction of trials in
// which the largest permuted mean difference across all pairs meets or
// exceeds the observed mean difference of that pair. Per trial, each
// topic's scores are shuffled across the system labels independently.
func (rt *RandomizedTukeyHSDTester) Test(samples [][]float64) (*RandomizedTukeyHSDTest, error) {
	if err := checkTupledSamples(samples, rt.nSystems); err != nil {
		return nil, err
	}

	var randomState uint64
	if rt.randomState != nil {
		randomState = *rt.randomState
	} else {
		randomState = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(randomState, 0))

	nSystems := rt.nSystems
	nTopics := float64(len(samples))

	means := make([]float64, nSystems)
	for _, row := range samples {
		floats.Add(means, row)
	}
	floats.Scale(1.0/nTopics, means)

	// Observed absolute mean differences, upper triangle.
	nPairs := nSystems * (nSystems - 1) / 2
	absDiffs := make([]float64, 0, nPairs)
	for i := 0; i < nSystems; i++ {
		for j := i + 1; j < nSystems; j++ {
			absDiffs = append(absDiffs, math.Abs(means[i]-means[j]))
		}
	}

	counts := make([]int, nPairs)
	shuffled := make([]float64, nSystems)
	permutedMeans := make([]float64, nSystems)
	for range rt.nTrials {
		for i := range permutedMeans {
			permutedMeans[i] = 0.0
		}
		for _, row := range samples {
			copy(shuffled, row)
			rng.Shuffle(nSystems, func(a, b int) {
				shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
			})
			floats.Add(permutedMeans, shuffled)
		}
		floats.Scale(1.0/nTopics, permutedMeans)

		maxDiff := floats.Max(permutedMeans) - floats.Min(permutedMeans)
		for p, diff := range absDiffs {
			if maxDiff >= diff {
				counts[p]++
			}
		}
	}

	pValues := mat.NewDense(nSystems, nSystems, nil)
	p := 0
	for i := 0; i < nSystems; i++ {
		for j := i + 1; j < nSystems; j++ {
			pValue := float64(counts[p]) / float64(rt.nTrials)
			pValues.Set(i, j, pValue)
			pValues.Set(j, i, pValue)
			p++
		}
	}

	return &RandomizedTukeyHSDTest{
		nSystems:    nSystems,
		nTopics:     len(samples),
		nTrials:     rt.nTrials,
		randomState: randomState,
		pValues:     pValues,
	}, nil
}
