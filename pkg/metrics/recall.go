package metrics

import "github.com/kampersanda/elinor/pkg/relevance"

// computeRecall returns hits@k over the number of judged-relevant
// documents, 0 when the query has none.
func computeRecall(rels map[string]int, preds []relevance.Entry[float64], k int) float64 {
	nRels := nRelevant(rels)
	if nRels == 0 {
		return 0.0
	}
	return computeHits(rels, preds, k) / float64(nRels)
}
