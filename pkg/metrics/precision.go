package metrics

import "github.com/kampersanda/elinor/pkg/relevance"

// computePrecision returns hits@k / k. The denominator stays at k even
// when fewer than k documents were retrieved, matching trec_eval.
// k == 0 evaluates the full ranked list.
func computePrecision(rels map[string]int, preds []relevance.Entry[float64], k int) float64 {
	denom := k
	if denom == 0 {
		denom = len(preds)
	}
	if denom == 0 {
		return 0.0
	}
	return computeHits(rels, preds, k) / float64(denom)
}
