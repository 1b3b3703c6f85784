package metrics

import "github.com/kampersanda/elinor/pkg/relevance"

// computeRPrecision returns precision at R, where R is the number of
// judged-relevant documents for the query.
func computeRPrecision(rels map[string]int, preds []relevance.Entry[float64], _ int) float64 {
	nRels := nRelevant(rels)
	if nRels == 0 {
		return 0.0
	}
	return computePrecision(rels, preds, nRels)
}
