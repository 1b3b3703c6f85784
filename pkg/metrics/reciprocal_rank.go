package metrics

import "github.com/kampersanda/elinor/pkg/relevance"

// computeReciprocalRank returns 1/rank of the first relevant document
// within the top k, 0 when none is found.
func computeReciprocalRank(rels map[string]int, preds []relevance.Entry[float64], k int) float64 {
	if k == 0 || k > len(preds) {
		k = len(preds)
	}
	for i, pred := range preds[:k] {
		if rel, ok := rels[pred.DocID]; ok && rel >= relevantLevel {
			return 1.0 / float64(i+1)
		}
	}
	return 0.0
}
