// Package report renders evaluation and comparison results for the
// command line.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gonum.org/v1/gonum/mat"

	"github.com/kampersanda/elinor/pkg/metrics"
	"github.com/kampersanda/elinor/pkg/stats"
)

// WriteEvaluation prints one mean score per metric followed by the
// auxiliary counts, in trec_eval's two-column layout. Lines carry a
// literal tab so the output stays machine-splittable.
func WriteEvaluation(w io.Writer, results []*metrics.Result, counts metrics.Counts) error {
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%s\t%.4f\n", r.Metric.String(), r.Mean); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "n_queries_in_true\t%d\nn_queries_in_pred\t%d\nn_docs_in_pred\t%d\nn_relevant_docs\t%d\n",
		counts.NQueriesInTrue, counts.NQueriesInPred, counts.NDocsInPred, counts.NRelevantDocs)
	return err
}

// WriteStudentTTest prints the paired comparison of two systems.
func WriteStudentTTest(w io.Writer, names [2]string, t *stats.StudentTTest, alpha float64) error {
	moe, err := t.MarginOfError(alpha)
	if err != nil {
		return err
	}
	low, high, err := t.ConfidenceInterval(alpha)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Paired Student's t-test for (%s - %s)\n", names[0], names[1])
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "n_topics\t%d\n", t.NTopics())
	fmt.Fprintf(tw, "mean\t%.4f\n", t.Mean())
	fmt.Fprintf(tw, "variance\t%.4f\n", t.Variance())
	fmt.Fprintf(tw, "effect_size\t%.4f\n", t.EffectSize())
	fmt.Fprintf(tw, "t_stat\t%.4f\n", t.TStat())
	fmt.Fprintf(tw, "p_value\t%.4f\n", t.PValue())
	fmt.Fprintf(tw, "%.1f%% MOE\t%.4f\n", (1.0-alpha)*100.0, moe)
	fmt.Fprintf(tw, "%.1f%% CI\t[%.4f, %.4f]\n", (1.0-alpha)*100.0, low, high)
	return tw.Flush()
}

// WriteBootstrapTest prints the paired bootstrap comparison of two
// systems.
func WriteBootstrapTest(w io.Writer, names [2]string, t *stats.BootstrapTest) error {
	fmt.Fprintf(w, "Paired bootstrap test for (%s - %s)\n", names[0], names[1])
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "n_topics\t%d\n", t.NTopics())
	fmt.Fprintf(tw, "n_resamples\t%d\n", t.NResamples())
	fmt.Fprintf(tw, "random_state\t%d\n", t.RandomState())
	fmt.Fprintf(tw, "p_value\t%.4f\n", t.PValue())
	return tw.Flush()
}

// WriteANOVA prints the two-way ANOVA table and per-system means with
// confidence intervals.
func WriteANOVA(w io.Writer, names []string, a *stats.TwoWayANOVAWithoutReplication, alpha float64) error {
	fmt.Fprintln(w, "Two-way ANOVA without replication")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "factor\tvariation\tvariance\tf_stat\tp_value\n")
	fmt.Fprintf(tw, "between-system\t%.4f\t%.4f\t%.4f\t%.4f\n",
		a.BetweenSystemVariation(), a.BetweenSystemVariance(), a.BetweenSystemFStat(), a.BetweenSystemPValue())
	fmt.Fprintf(tw, "between-topic\t%.4f\t%.4f\t%.4f\t%.4f\n",
		a.BetweenTopicVariation(), a.BetweenTopicVariance(), a.BetweenTopicFStat(), a.BetweenTopicPValue())
	fmt.Fprintf(tw, "residual\t%.4f\t%.4f\t\t\n", a.ResidualVariation(), a.ResidualVariance())
	if err := tw.Flush(); err != nil {
		return err
	}

	intervals, err := a.ConfidenceIntervals(alpha)
	if err != nil {
		return err
	}
	means := a.SystemMeans()
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "system\tmean\t%.1f%% CI\n", (1.0-alpha)*100.0)
	for i, name := range names {
		fmt.Fprintf(tw, "%s\t%.4f\t[%.4f, %.4f]\n", name, means[i], intervals[i][0], intervals[i][1])
	}
	return tw.Flush()
}

// WriteTukeyHSD prints pairwise effect sizes and p-values from the
// closed-form Tukey HSD procedure.
func WriteTukeyHSD(w io.Writer, names []string, t *stats.TukeyHSDTest) error {
	fmt.Fprintln(w, "Tukey HSD test")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "pair\tt_stat\tp_value\teffect_size\n")
	for i := 0; i < t.NSystems(); i++ {
		for j := i + 1; j < t.NSystems(); j++ {
			tStat, err := t.TStat(i, j)
			if err != nil {
				return err
			}
			pValue, err := t.PValue(i, j)
			if err != nil {
				return err
			}
			effect, err := t.EffectSize(i, j)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%s - %s\t%.4f\t%.4f\t%.4f\n", names[i], names[j], tStat, pValue, effect)
		}
	}
	return tw.Flush()
}

// WriteRandomizedTukeyHSD prints pairwise p-values from the
// randomization procedure.
func WriteRandomizedTukeyHSD(w io.Writer, names []string, t *stats.RandomizedTukeyHSDTest) error {
	fmt.Fprintf(w, "Randomized Tukey HSD test (n_trials=%d, random_state=%d)\n", t.NTrials(), t.RandomState())
	pValues := t.PValues()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "pair\tp_value\n")
	writePairMatrix(tw, names, pValues)
	return tw.Flush()
}

func writePairMatrix(w io.Writer, names []string, m *mat.Dense) {
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			fmt.Fprintf(w, "%s - %s\t%.4f\n", names[i], names[j], m.At(i, j))
		}
	}
}
