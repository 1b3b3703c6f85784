package stats

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Pair is one topic's scores under two systems.
type Pair struct {
	A float64
	B float64
}

// StudentTTest holds the outcome of a paired two-sided Student's t-test
// on per-topic score differences.
type StudentTTest struct {
	nTopics  int
	mean     float64
	variance float64
	tStat    float64
	pValue   float64
	// t-distribution scaled by sqrt(var/n), used for margins of error.
	scaledTDist distuv.StudentsT
}

// StudentTTestFromSamples runs the test on precomputed differences.
func StudentTTestFromSamples(samples []float64) (*StudentTTest, error) {
	tStat, mean, variance, err := computeTStat(samples)
	if err != nil {
		return nil, err
	}
	n := float64(len(samples))
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: n - 1}
	return &StudentTTest{
		nTopics:     len(samples),
		mean:        mean,
		variance:    variance,
		tStat:       tStat,
		pValue:      tDist.Survival(math.Abs(tStat)) * 2.0, // two-tailed
		scaledTDist: distuv.StudentsT{Mu: 0, Sigma: math.Sqrt(variance / n), Nu: n - 1},
	}, nil
}

// StudentTTestFromPairedSamples runs the test on per-topic differences
// a - b.
func StudentTTestFromPairedSamples(pairs []Pair) (*StudentTTest, error) {
	return StudentTTestFromSamples(pairedDiffs(pairs))
}

// StudentTTestFromScoreMaps merges two topic-to-score mappings by key
// and runs the paired test. The key sets must be identical.
func StudentTTestFromScoreMaps(a, b map[string]float64) (*StudentTTest, error) {
	pairs, err := mergeScoreMaps(a, b)
	if err != nil {
		return nil, err
	}
	return StudentTTestFromPairedSamples(pairs)
}

// NTopics returns the number of paired topics.
func (t *StudentTTest) NTopics() int {
	return t.nTopics
}

// Mean of the differences.
func (t *StudentTTest) Mean() float64 {
	return t.mean
}

// Variance is the unbiased sample variance of the differences.
func (t *StudentTTest) Variance() float64 {
	return t.variance
}

// EffectSize is mean / sqrt(variance).
func (t *StudentTTest) EffectSize() float64 {
	return t.mean / math.Sqrt(t.variance)
}

// TStat is mean / sqrt(variance/n).
func (t *StudentTTest) TStat() float64 {
	return t.tStat
}

// PValue is the two-tailed probability under the t-distribution with
// n-1 degrees of freedom.
func (t *StudentTTest) PValue() float64 {
	return t.pValue
}

// MarginOfError at a (1 - alpha) confidence level.
func (t *StudentTTest) MarginOfError(alpha float64) (float64, error) {
	if err := checkAlpha(alpha); err != nil {
		return 0, err
	}
	return t.scaledTDist.Quantile(1.0 - alpha/2.0), nil
}

// ConfidenceInterval at a (1 - alpha) confidence level.
func (t *StudentTTest) ConfidenceInterval(alpha float64) (float64, float64, error) {
	moe, err := t.MarginOfError(alpha)
	if err != nil {
		return 0, 0, err
	}
	return t.mean - moe, t.mean + moe, nil
}

// IsSignificant reports whether the difference is significant at the
// given significance level.
func (t *StudentTTest) IsSignificant(alpha float64) bool {
	return t.pValue < alpha
}

// computeTStat returns the t-statistic, mean, and unbiased variance of
// the samples.
func computeTStat(samples []float64) (tStat, mean, variance float64, err error) {
	if len(samples) < 2 {
		return 0, 0, 0, &InputError{msg: "the input must have at least two samples"}
	}
	mean = stat.Mean(samples, nil)
	variance = stat.Variance(samples, nil)
	if variance == 0.0 {
		return 0, 0, 0, &NumericError{msg: "the variance is zero"}
	}
	tStat = mean / math.Sqrt(variance/float64(len(samples)))
	return tStat, mean, variance, nil
}

func pairedDiffs(pairs []Pair) []float64 {
	diffs := make([]float64, len(pairs))
	for i, p := range pairs {
		diffs[i] = p.A - p.B
	}
	return diffs
}

// mergeScoreMaps aligns two topic-to-score mappings into pairs ordered
// by topic id. Mismatched topic sets fail with an InputError.
func mergeScoreMaps(a, b map[string]float64) ([]Pair, error) {
	if len(a) != len(b) {
		return nil, &InputError{msg: fmt.Sprintf(
			"topic sets must match, but got %d and %d topics", len(a), len(b))}
	}
	topics := make([]string, 0, len(a))
	for topic := range a {
		if _, ok := b[topic]; !ok {
			return nil, &InputError{msg: fmt.Sprintf("topic %s is missing from the second system", topic)}
		}
		topics = append(topics, topic)
	}
	slices.Sort(topics)
	pairs := make([]Pair, len(topics))
	for i, topic := range topics {
		pairs[i] = Pair{A: a[topic], B: b[topic]}
	}
	return pairs, nil
}

func checkAlpha(alpha float64) error {
	if alpha <= 0.0 || alpha > 1.0 {
		return &InputError{msg: "the significance level must be in the range (0, 1]"}
	}
	return nil
}
