package metrics

import "github.com/kampersanda/elinor/pkg/relevance"

// computeF1 returns the harmonic mean of precision@k and recall@k,
// 0 when both are 0.
func computeF1(rels map[string]int, preds []relevance.Entry[float64], k int) float64 {
	precision := computePrecision(rels, preds, k)
	recall := computeRecall(rels, preds, k)
	if precision+recall == 0.0 {
		return 0.0
	}
	return 2.0 * precision * recall / (precision + recall)
}
