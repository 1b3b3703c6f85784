package metrics

import (
	"context"
	"runtime"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/kampersanda/elinor/pkg/relevance"
)

// QueryPolicy selects which queries contribute to the mean.
type QueryPolicy int

const (
	// PolicyTrueQueries evaluates every query present in the judgment
	// set. Queries with judgments but no predictions score 0 on every
	// metric; queries with predictions but no judgments are excluded.
	// This mirrors trec_eval's "queries in qrels" denominator.
	PolicyTrueQueries QueryPolicy = iota
	// PolicyIntersection evaluates only queries present in both stores.
	PolicyIntersection
)

type options struct {
	policy QueryPolicy
}

// Option configures an evaluation call.
type Option func(*options)

// WithPolicy overrides the default query-set reconciliation policy.
func WithPolicy(p QueryPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// Result holds per-query scores for one metric together with their
// arithmetic mean over the evaluated query set.
type Result struct {
	Metric Metric
	// Scores maps query id to the metric score for that query.
	Scores map[string]float64
	Mean   float64
}

// Counts are the auxiliary tallies always reported alongside metrics.
type Counts struct {
	NQueriesInTrue int
	NQueriesInPred int
	NDocsInPred    int
	NRelevantDocs  int
}

// CountsOf tallies the auxiliary counts for a store pair.
func CountsOf(trueStore *relevance.TrueStore, predStore *relevance.PredStore) Counts {
	return Counts{
		NQueriesInTrue: trueStore.NQueries(),
		NQueriesInPred: predStore.NQueries(),
		NDocsInPred:    predStore.NDocs(),
		NRelevantDocs:  relevance.NRelevant(trueStore),
	}
}

// Evaluate computes one metric for every evaluated query and its mean.
// Per-query computations run in parallel; the mean is reduced in
// ascending query-id order so the summation order is fixed.
func Evaluate(trueStore *relevance.TrueStore, predStore *relevance.PredStore, metric Metric, opts ...Option) (*Result, error) {
	o := options{policy: PolicyTrueQueries}
	for _, opt := range opts {
		opt(&o)
	}

	queryIDs := trueStore.QueryIDs()
	if o.policy == PolicyIntersection {
		common := make([]string, 0, len(queryIDs))
		for _, queryID := range queryIDs {
			if predStore.HasQuery(queryID) {
				common = append(common, queryID)
			}
		}
		queryIDs = common
	}

	scores := make([]float64, len(queryIDs))
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, queryID := range queryIDs {
		g.Go(func() error {
			score, err := computeQueryScore(trueStore, predStore, queryID, metric)
			if err != nil {
				return err
			}
			scores[i] = score
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byQuery := make(map[string]float64, len(queryIDs))
	for i, queryID := range queryIDs {
		byQuery[queryID] = scores[i]
	}
	mean := 0.0
	if len(scores) > 0 {
		mean = floats.Sum(scores) / float64(len(scores))
	}
	log.Debug().Stringer("metric", metric).Int("n_queries", len(queryIDs)).Float64("mean", mean).
		Msg("evaluated metric")
	return &Result{Metric: metric, Scores: byQuery, Mean: mean}, nil
}

// EvaluateAll computes every requested metric, preserving request order.
func EvaluateAll(trueStore *relevance.TrueStore, predStore *relevance.PredStore, ms []Metric, opts ...Option) ([]*Result, error) {
	results := make([]*Result, 0, len(ms))
	for _, metric := range ms {
		result, err := Evaluate(trueStore, predStore, metric, opts...)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func computeQueryScore(trueStore *relevance.TrueStore, predStore *relevance.PredStore, queryID string, metric Metric) (float64, error) {
	rels := trueStore.Map(queryID)
	preds := predStore.Sorted(queryID)
	switch metric.Kind {
	case KindHits:
		return computeHits(rels, preds, metric.K), nil
	case KindSuccess:
		return computeSuccess(rels, preds, metric.K), nil
	case KindPrecision:
		return computePrecision(rels, preds, metric.K), nil
	case KindRecall:
		return computeRecall(rels, preds, metric.K), nil
	case KindF1:
		return computeF1(rels, preds, metric.K), nil
	case KindRPrecision:
		return computeRPrecision(rels, preds, metric.K), nil
	case KindAP:
		return computeAveragePrecision(rels, preds, metric.K), nil
	case KindRR:
		return computeReciprocalRank(rels, preds, metric.K), nil
	case KindBpref:
		return computeBpref(rels, preds), nil
	case KindDCG:
		return computeDCG(rels, preds, metric.K, gainExponential), nil
	case KindNDCG:
		return computeNDCG(rels, trueStore.Sorted(queryID), preds, metric.K, gainExponential), nil
	case KindDCGLinear:
		return computeDCG(rels, preds, metric.K, gainLinear), nil
	case KindNDCGLinear:
		return computeNDCG(rels, trueStore.Sorted(queryID), preds, metric.K, gainLinear), nil
	}
	return 0, &UnknownMetricError{Spec: metric.String()}
}
