package metrics

import "github.com/kampersanda/elinor/pkg/relevance"

// computeAveragePrecision sums precision@i over every rank i <= k
// holding a relevant document and divides by the total number of
// judged-relevant documents, not by the number of hits found.
func computeAveragePrecision(rels map[string]int, preds []relevance.Entry[float64], k int) float64 {
	nRels := nRelevant(rels)
	if nRels == 0 {
		return 0.0
	}
	if k == 0 || k > len(preds) {
		k = len(preds)
	}
	sum := 0.0
	hits := 0
	for i, pred := range preds[:k] {
		if rel, ok := rels[pred.DocID]; ok && rel >= relevantLevel {
			hits++
			sum += float64(hits) / float64(i+1)
		}
	}
	return sum / float64(nRels)
}
