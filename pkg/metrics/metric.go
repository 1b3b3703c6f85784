// Package metrics computes rank-quality metrics over judgment and
// prediction stores.
package metrics

import (
	"fmt"
	"strconv"
	"strings"
)

// Relevance grade at or above which a judged document counts as relevant.
const relevantLevel = 1

// Kind identifies a supported metric family.
type Kind string

const (
	KindHits       Kind = "hits"
	KindSuccess    Kind = "success"
	KindPrecision  Kind = "precision"
	KindRecall     Kind = "recall"
	KindF1         Kind = "f1"
	KindRPrecision Kind = "r_precision"
	KindAP         Kind = "ap"
	KindRR         Kind = "rr"
	KindBpref      Kind = "bpref"
	KindDCG        Kind = "dcg"
	KindNDCG       Kind = "ndcg"
	KindDCGLinear  Kind = "dcg_linear"
	KindNDCGLinear Kind = "ndcg_linear"
)

// takesCutoff reports whether the metric family accepts an @k suffix.
// r_precision derives its own depth and bpref always scans the full
// ranking, so a cutoff on either is rejected at parse time.
func (k Kind) takesCutoff() bool {
	switch k {
	case KindRPrecision, KindBpref:
		return false
	}
	return true
}

var allKinds = map[Kind]struct{}{
	KindHits:       {},
	KindSuccess:    {},
	KindPrecision:  {},
	KindRecall:     {},
	KindF1:         {},
	KindRPrecision: {},
	KindAP:         {},
	KindRR:         {},
	KindBpref:      {},
	KindDCG:        {},
	KindNDCG:       {},
	KindDCGLinear:  {},
	KindNDCGLinear: {},
}

// Metric is a metric family plus an optional cutoff. K == 0 means the
// full ranked list is evaluated.
type Metric struct {
	Kind Kind
	K    int
}

// String formats the metric as name or name@k, round-tripping with
// ParseMetric.
func (m Metric) String() string {
	if m.K == 0 {
		return string(m.Kind)
	}
	return fmt.Sprintf("%s@%d", m.Kind, m.K)
}

// ParseMetric resolves a name@k string into a Metric. Unknown names,
// malformed cutoffs, and cutoffs on metrics that do not take one fail
// with an UnknownMetricError.
func ParseMetric(s string) (Metric, error) {
	name, suffix, hasCutoff := strings.Cut(s, "@")
	kind := Kind(name)
	if _, ok := allKinds[kind]; !ok {
		return Metric{}, &UnknownMetricError{Spec: s}
	}
	k := 0
	if hasCutoff {
		parsed, err := strconv.Atoi(suffix)
		if err != nil || parsed < 0 {
			return Metric{}, &UnknownMetricError{Spec: s}
		}
		if parsed > 0 && !kind.takesCutoff() {
			return Metric{}, &UnknownMetricError{Spec: s}
		}
		k = parsed
	}
	return Metric{Kind: kind, K: k}, nil
}

// ParseMetrics resolves a list of metric specs, failing fast on the
// first unknown one.
func ParseMetrics(specs []string) ([]Metric, error) {
	parsed := make([]Metric, 0, len(specs))
	for _, s := range specs {
		m, err := ParseMetric(s)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, m)
	}
	return parsed, nil
}
