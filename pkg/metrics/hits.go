package metrics

import "github.com/kampersanda/elinor/pkg/relevance"

// computeHits counts retrieved documents judged relevant within the top k.
// Unjudged documents never count.
func computeHits(rels map[string]int, preds []relevance.Entry[float64], k int) float64 {
	if k == 0 || k > len(preds) {
		k = len(preds)
	}
	hits := 0
	for _, pred := range preds[:k] {
		if rel, ok := rels[pred.DocID]; ok && rel >= relevantLevel {
			hits++
		}
	}
	return float64(hits)
}

// computeSuccess returns 1 if any relevant document appears in the top k.
func computeSuccess(rels map[string]int, preds []relevance.Entry[float64], k int) float64 {
	if k == 0 || k > len(preds) {
		k = len(preds)
	}
	for _, pred := range preds[:k] {
		if rel, ok := rels[pred.DocID]; ok && rel >= relevantLevel {
			return 1.0
		}
	}
	return 0.0
}

// nRelevant counts judged documents at or above the relevant grade.
func nRelevant(rels map[string]int) int {
	n := 0
	for _, rel := range rels {
		if rel >= relevantLevel {
			n++
		}
	}
	return n
}
