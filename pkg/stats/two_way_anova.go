package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TwoWayANOVAWithoutReplication decomposes S systems x n topics scores
// into between-system, between-topic, and residual variation.
type TwoWayANOVAWithoutReplication struct {
	nSystems               int
	nTopics                int
	betweenSystemVariation float64 // S_A
	betweenTopicVariation  float64 // S_B
	residualVariation      float64 // S_E
	betweenSystemVariance  float64 // V_A
	betweenTopicVariance   float64 // V_B
	residualVariance       float64 // V_E
	betweenSystemFStat     float64
	betweenTopicFStat      float64
	betweenSystemPValue    float64
	betweenTopicPValue     float64
	systemMeans            []float64
	// t-distribution scaled by sqrt(V_E/n), used for margins of error.
	scaledTDist distuv.StudentsT
}

// TwoWayANOVAFromTupledSamples computes the ANOVA for rows of per-topic
// scores, one column per system.
func TwoWayANOVAFromTupledSamples(samples [][]float64, nSystems int) (*TwoWayANOVAWithoutReplication, error) {
	if err := checkTupledSamples(samples, nSystems); err != nil {
		return nil, err
	}

	layout := newTwoWayLayout(samples, nSystems)
	nTopics := float64(len(samples))

	betweenSystemFreedom := float64(nSystems) - 1.0
	betweenTopicFreedom := nTopics - 1.0
	residualFreedom := betweenSystemFreedom * betweenTopicFreedom

	betweenSystemVariance := layout.betweenSystemVariation / betweenSystemFreedom
	betweenTopicVariance := layout.betweenTopicVariation / betweenTopicFreedom
	residualVariance := layout.residualVariation / residualFreedom
	if residualVariance == 0.0 {
		return nil, &NumericError{msg: "the residual variance is zero"}
	}

	betweenSystemFDist := distuv.F{D1: betweenSystemFreedom, D2: residualFreedom}
	betweenTopicFDist := distuv.F{D1: betweenTopicFreedom, D2: residualFreedom}
	betweenSystemFStat := betweenSystemVariance / residualVariance
	betweenTopicFStat := betweenTopicVariance / residualVariance

	return &TwoWayANOVAWithoutReplication{
		nSystems:               nSystems,
		nTopics:                len(samples),
		betweenSystemVariation: layout.betweenSystemVariation,
		betweenTopicVariation:  layout.betweenTopicVariation,
		residualVariation:      layout.residualVariation,
		betweenSystemVariance:  betweenSystemVariance,
		betweenTopicVariance:   betweenTopicVariance,
		residualVariance:       residualVariance,
		betweenSystemFStat:     betweenSystemFStat,
		betweenTopicFStat:      betweenTopicFStat,
		betweenSystemPValue:    betweenSystemFDist.Survival(betweenSystemFStat),
		betweenTopicPValue:     betweenTopicFDist.Survival(betweenTopicFStat),
		systemMeans:            layout.systemMeans,
		scaledTDist: distuv.StudentsT{
			Mu:    0,
			Sigma: math.Sqrt(residualVariance / nTopics),
			Nu:    residualFreedom,
		},
	}, nil
}

// NSystems returns the number of systems.
func (a *TwoWayANOVAWithoutReplication) NSystems() int {
	return a.nSystems
}

// NTopics returns the number of topics.
func (a *TwoWayANOVAWithoutReplication) NTopics() int {
	return a.nTopics
}

// BetweenSystemVariation is the between-system sum of squares S_A.
func (a *TwoWayANOVAWithoutReplication) BetweenSystemVariation() float64 {
	return a.betweenSystemVariation
}

// BetweenTopicVariation is the between-topic sum of squares S_B.
func (a *TwoWayANOVAWithoutReplication) BetweenTopicVariation() float64 {
	return a.betweenTopicVariation
}

// ResidualVariation is the residual sum of squares S_E.
func (a *TwoWayANOVAWithoutReplication) ResidualVariation() float64 {
	return a.residualVariation
}

// TotalVariation is S_A + S_B + S_E.
func (a *TwoWayANOVAWithoutReplication) TotalVariation() float64 {
	return a.betweenSystemVariation + a.betweenTopicVariation + a.residualVariation
}

// BetweenSystemVariance is S_A / (S - 1).
func (a *TwoWayANOVAWithoutReplication) BetweenSystemVariance() float64 {
	return a.betweenSystemVariance
}

// BetweenTopicVariance is S_B / (n - 1).
func (a *TwoWayANOVAWithoutReplication) BetweenTopicVariance() float64 {
	return a.betweenTopicVariance
}

// ResidualVariance is S_E / ((S - 1)(n - 1)).
func (a *TwoWayANOVAWithoutReplication) ResidualVariance() float64 {
	return a.residualVariance
}

// BetweenSystemFStat is the F-statistic for the system factor.
func (a *TwoWayANOVAWithoutReplication) BetweenSystemFStat() float64 {
	return a.betweenSystemFStat
}

// BetweenTopicFStat is the F-statistic for the topic factor.
func (a *TwoWayANOVAWithoutReplication) BetweenTopicFStat() float64 {
	return a.betweenTopicFStat
}

// BetweenSystemPValue is the upper-tail F probability for the system
// factor.
func (a *TwoWayANOVAWithoutReplication) BetweenSystemPValue() float64 {
	return a.betweenSystemPValue
}

// BetweenTopicPValue is the upper-tail F probability for the topic
// factor.
func (a *TwoWayANOVAWithoutReplication) BetweenTopicPValue() float64 {
	return a.betweenTopicPValue
}

// SystemMeans returns the mean score of each system.
func (a *TwoWayANOVAWithoutReplication) SystemMeans() []float64 {
	out := make([]float64, len(a.systemMeans))
	copy(out, a.systemMeans)
	return out
}

// MarginOfError at a (1 - alpha) confidence level, based on the
// residual variance.
func (a *TwoWayANOVAWithoutReplication) MarginOfError(alpha float64) (float64, error) {
	if err := checkAlpha(alpha); err != nil {
		return 0, err
	}
	return a.scaledTDist.Quantile(1.0 - alpha/2.0), nil
}

// ConfidenceIntervals returns a (low, high) interval per system mean at
// a (1 - alpha) confidence level.
func (a *TwoWayANOVAWithoutReplication) ConfidenceIntervals(alpha float64) ([][2]float64, error) {
	moe, err := a.MarginOfError(alpha)
	if err != nil {
		return nil, err
	}
	intervals := make([][2]float64, len(a.systemMeans))
	for i, mean := range a.systemMeans {
		intervals[i] = [2]float64{mean - moe, mean + moe}
	}
	return intervals, nil
}

// EffectSizes returns the S x S antisymmetric matrix of
// (mean_i - mean_j) / sqrt(V_E) with an exactly zero diagonal.
func (a *TwoWayANOVAWithoutReplication) EffectSizes() *mat.Dense {
	scale := math.Sqrt(a.residualVariance)
	effects := mat.NewDense(a.nSystems, a.nSystems, nil)
	for i := 0; i < a.nSystems; i++ {
		for j := i + 1; j < a.nSystems; j++ {
			effect := (a.systemMeans[i] - a.systemMeans[j]) / scale
			effects.Set(i, j, effect)
			effects.Set(j, i, -effect)
		}
	}
	return effects
}

// twoWayLayout carries the shared decomposition of a systems-by-topics
// score table.
type twoWayLayout struct {
	overallMean            float64
	systemMeans            []float64
	topicMeans             []float64
	betweenSystemVariation float64
	betweenTopicVariation  float64
	residualVariation      float64
}

func newTwoWayLayout(samples [][]float64, nSystems int) twoWayLayout {
	nTopics := float64(len(samples))
	nSystemsF := float64(nSystems)

	total := 0.0
	systemMeans := make([]float64, nSystems)
	topicMeans := make([]float64, len(samples))
	for j, row := range samples {
		rowSum := floats.Sum(row)
		total += rowSum
		topicMeans[j] = rowSum / nSystemsF
		for i, x := range row {
			systemMeans[i] += x
		}
	}
	for i := range systemMeans {
		systemMeans[i] /= nTopics
	}
	overallMean := total / (nTopics * nSystemsF)

	sA := 0.0
	for _, m := range systemMeans {
		d := m - overallMean
		sA += d * d
	}
	sA *= nTopics

	sB := 0.0
	for _, m := range topicMeans {
		d := m - overallMean
		sB += d * d
	}
	sB *= nSystemsF

	sE := 0.0
	for j, row := range samples {
		for i, x := range row {
			d := x - systemMeans[i] - topicMeans[j] + overallMean
			sE += d * d
		}
	}

	return twoWayLayout{
		overallMean:            overallMean,
		systemMeans:            systemMeans,
		topicMeans:             topicMeans,
		betweenSystemVariation: sA,
		betweenTopicVariation:  sB,
		residualVariation:      sE,
	}
}

func checkTupledSamples(samples [][]float64, nSystems int) error {
	if nSystems < 2 {
		return &InputError{msg: "the input must cover at least two systems"}
	}
	if len(samples) < 2 {
		return &InputError{msg: "the input must have at least two samples"}
	}
	for j, row := range samples {
		if len(row) != nSystems {
			return &InputError{msg: fmt.Sprintf(
				"every sample must have one score per system, but sample %d has %d of %d", j, len(row), nSystems)}
		}
	}
	return nil
}
