package metrics

import (
	"math"

	"github.com/kampersanda/elinor/pkg/relevance"
)

// gainScheme selects how a relevance grade becomes a DCG gain.
type gainScheme int

const (
	// gainExponential uses 2^grade - 1 (Burges et al., ICML 2005).
	gainExponential gainScheme = iota
	// gainLinear uses the grade itself (Jarvelin et al., TOIS 2002).
	gainLinear
)

func gain(rel int, scheme gainScheme) float64 {
	if scheme == gainLinear {
		return float64(rel)
	}
	return math.Exp2(float64(rel)) - 1.0
}

// computeDCG sums gain(grade)/log2(rank+1) over the top k retrieved
// documents. Unjudged documents contribute nothing.
func computeDCG(rels map[string]int, preds []relevance.Entry[float64], k int, scheme gainScheme) float64 {
	if k == 0 || k > len(preds) {
		k = len(preds)
	}
	dcg := 0.0
	for i, pred := range preds[:k] {
		if rel, ok := rels[pred.DocID]; ok {
			dcg += gain(rel, scheme) / math.Log2(float64(i)+2.0)
		}
	}
	return dcg
}

// computeIdealDCG computes the best possible DCG from the judged grades
// sorted descending, truncated to min(k, number of judged documents).
func computeIdealDCG(golds []relevance.Entry[int], k int, scheme gainScheme) float64 {
	if k == 0 || k > len(golds) {
		k = len(golds)
	}
	idcg := 0.0
	for i, gold := range golds[:k] {
		idcg += gain(gold.Score, scheme) / math.Log2(float64(i)+2.0)
	}
	return idcg
}

// computeNDCG normalizes DCG by the ideal DCG over the judged grades.
// Queries whose judged grades are all zero score 0.
func computeNDCG(rels map[string]int, golds []relevance.Entry[int], preds []relevance.Entry[float64], k int, scheme gainScheme) float64 {
	idcg := computeIdealDCG(golds, k, scheme)
	if idcg == 0.0 {
		return 0.0
	}
	return computeDCG(rels, preds, k, scheme) / idcg
}
