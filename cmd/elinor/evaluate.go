package main

import (
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/kampersanda/elinor/internal/config"
	"github.com/kampersanda/elinor/internal/loader"
	"github.com/kampersanda/elinor/internal/report"
	"github.com/kampersanda/elinor/pkg/metrics"
)

func evaluateCmd(cfg *config.AppConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Compute ranking metrics for a run against judgments",
		Long: `Score a prediction file against a judgment file and print the mean
of each metric together with auxiliary counts.

Input files are TREC qrels/run or JSONL records, optionally
gzip-compressed. Metric names take an optional @k cutoff, e.g.
precision@10 or ndcg@20.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			trueFile, _ := cmd.Flags().GetString("true-file")
			predFile, _ := cmd.Flags().GetString("pred-file")
			formatFlag, _ := cmd.Flags().GetString("format")
			metricSpecs, _ := cmd.Flags().GetStringSlice("metrics")
			outputCSV, _ := cmd.Flags().GetString("output-csv")
			intersection, _ := cmd.Flags().GetBool("intersection")

			format, err := loader.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			if len(metricSpecs) == 0 {
				metricSpecs = cfg.DefaultMetrics
			}
			ms, err := metrics.ParseMetrics(metricSpecs)
			if err != nil {
				return err
			}

			trueStore, err := loader.LoadTrueStore(trueFile, format)
			if err != nil {
				return err
			}
			predStore, err := loader.LoadPredStore(predFile, format)
			if err != nil {
				return err
			}

			var opts []metrics.Option
			if intersection {
				opts = append(opts, metrics.WithPolicy(metrics.PolicyIntersection))
			}
			results, err := metrics.EvaluateAll(trueStore, predStore, ms, opts...)
			if err != nil {
				return err
			}

			counts := metrics.CountsOf(trueStore, predStore)
			if err := report.WriteEvaluation(cmd.OutOrStdout(), results, counts); err != nil {
				return err
			}

			if outputCSV != "" {
				f, err := os.Create(outputCSV)
				if err != nil {
					return err
				}
				defer f.Close()
				queryIDs := evaluatedQueryIDs(results)
				if err := report.WritePerQueryCSV(f, queryIDs, results); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringP("true-file", "t", "", "judgment file (qrels or JSONL)")
	cmd.Flags().StringP("pred-file", "p", "", "prediction file (run or JSONL)")
	cmd.Flags().StringP("format", "f", "auto", "input format (auto, trec, jsonl)")
	cmd.Flags().StringSliceP("metrics", "m", nil, "metrics to compute (default from ELINOR_DEFAULT_METRICS)")
	cmd.Flags().StringP("output-csv", "o", "", "write per-query scores to this CSV file")
	cmd.Flags().Bool("intersection", false, "evaluate only queries present in both files")
	cmd.MarkFlagRequired("true-file")
	cmd.MarkFlagRequired("pred-file")

	return cmd
}

// evaluatedQueryIDs returns the query set of the results in ascending
// order. Every result covers the same queries.
func evaluatedQueryIDs(results []*metrics.Result) []string {
	if len(results) == 0 {
		return nil
	}
	ids := make([]string, 0, len(results[0].Scores))
	for queryID := range results[0].Scores {
		ids = append(ids, queryID)
	}
	slices.Sort(ids)
	return ids
}
