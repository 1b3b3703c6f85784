package metrics

import "github.com/kampersanda/elinor/pkg/relevance"

// computeBpref implements the binary preference measure of Buckley and
// Voorhees (SIGIR 2004). Only judged documents participate: unjudged
// retrieved documents are skipped entirely rather than counted as
// non-relevant. Each retrieved relevant document r contributes
// 1 - min(R, N_r)/min(R, N), where N_r is the number of judged
// non-relevant documents ranked above r. When no judged non-relevant
// document precedes r the contribution is exactly 1, which also covers
// queries with N == 0 without dividing by zero.
func computeBpref(rels map[string]int, preds []relevance.Entry[float64]) float64 {
	nRels := 0
	for _, rel := range rels {
		if rel >= relevantLevel {
			nRels++
		}
	}
	if nRels == 0 {
		return 0.0
	}
	nNonRels := float64(len(rels) - nRels)
	nRelsF := float64(nRels)

	bpref := 0.0
	nonRelsSoFar := 0.0
	for _, pred := range preds {
		rel, judged := rels[pred.DocID]
		if !judged {
			continue
		}
		if rel >= relevantLevel {
			if nonRelsSoFar > 0 {
				bpref += 1.0 - min(nonRelsSoFar, nRelsF)/min(nNonRels, nRelsF)
			} else {
				bpref += 1.0
			}
		} else {
			nonRelsSoFar++
		}
	}
	return bpref / nRelsF
}
