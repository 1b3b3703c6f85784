package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kampersanda/elinor/internal/config"
	"github.com/kampersanda/elinor/internal/loader"
	"github.com/kampersanda/elinor/internal/report"
	"github.com/kampersanda/elinor/pkg/stats"
)

func compareCmd(cfg *config.AppConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <scores.csv> <scores.csv> [scores.csv...]",
		Short: "Run significance tests over per-query score files",
		Long: `Compare two or more systems from per-query score CSVs, as written by
'elinor evaluate --output-csv'.

Two systems get a paired Student's t-test and a paired bootstrap test.
Three or more get a two-way ANOVA without replication followed by
Tukey HSD and randomized Tukey HSD tests.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			metricName, _ := cmd.Flags().GetString("metric")
			alpha, _ := cmd.Flags().GetFloat64("alpha")
			nResamples, _ := cmd.Flags().GetInt("n-resamples")
			nTrials, _ := cmd.Flags().GetInt("n-trials")
			randomState, _ := cmd.Flags().GetUint64("random-state")

			names := make([]string, len(args))
			columns := make([]map[string]float64, len(args))
			for i, path := range args {
				table, err := loader.LoadScoreTable(path)
				if err != nil {
					return err
				}
				if metricName == "" {
					metricName = table.Metrics[0]
				}
				col, ok := table.Column(metricName)
				if !ok {
					return fmt.Errorf("%s: no column for metric %s", path, metricName)
				}
				names[i] = systemName(path)
				columns[i] = col
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Comparing %d systems on %s (n_topics=%d)\n\n",
				len(columns), metricName, len(columns[0]))

			if len(columns) == 2 {
				return compareTwo(out, cfg, names, columns, alpha, nResamples, randomState)
			}
			return compareMany(out, cfg, names, columns, alpha, nTrials, randomState)
		},
	}

	cmd.Flags().StringP("metric", "m", "", "metric column to compare (default: first column)")
	cmd.Flags().Float64("alpha", 0.05, "significance level")
	cmd.Flags().Int("n-resamples", 0, "bootstrap resamples (default from ELINOR_N_RESAMPLES)")
	cmd.Flags().Int("n-trials", 0, "randomized Tukey HSD trials (default from ELINOR_N_TRIALS)")
	cmd.Flags().Uint64("random-state", 0, "seed for resampling procedures (0 draws a fresh seed)")

	return cmd
}

func compareTwo(out io.Writer, cfg *config.AppConfig, names []string, columns []map[string]float64, alpha float64, nResamples int, randomState uint64) error {
	pairs, err := stats.PairsFromScoreMaps(columns[0], columns[1])
	if err != nil {
		return err
	}

	tTest, err := stats.StudentTTestFromPairedSamples(pairs)
	if err != nil {
		return err
	}
	if err := report.WriteStudentTTest(out, [2]string{names[0], names[1]}, tTest, alpha); err != nil {
		return err
	}
	fmt.Fprintln(out)

	if nResamples == 0 {
		nResamples = cfg.NResamples
	}
	tester := stats.NewBootstrapTester().WithNResamples(nResamples)
	if randomState != 0 {
		tester = tester.WithRandomState(randomState)
	} else if cfg.RandomState != 0 {
		tester = tester.WithRandomState(cfg.RandomState)
	}
	bootTest, err := tester.TestPairedSamples(pairs)
	if err != nil {
		return err
	}
	return report.WriteBootstrapTest(out, [2]string{names[0], names[1]}, bootTest)
}

func compareMany(out io.Writer, cfg *config.AppConfig, names []string, columns []map[string]float64, alpha float64, nTrials int, randomState uint64) error {
	samples, err := stats.TupledSamplesFromScoreMaps(columns)
	if err != nil {
		return err
	}
	nSystems := len(columns)

	anova, err := stats.TwoWayANOVAFromTupledSamples(samples, nSystems)
	if err != nil {
		return err
	}
	if err := report.WriteANOVA(out, names, anova, alpha); err != nil {
		return err
	}
	fmt.Fprintln(out)

	tukey, err := stats.TukeyHSDFromTupledSamples(samples, nSystems)
	if err != nil {
		return err
	}
	if err := report.WriteTukeyHSD(out, names, tukey); err != nil {
		return err
	}
	fmt.Fprintln(out)

	if nTrials == 0 {
		nTrials = cfg.NTrials
	}
	tester := stats.NewRandomizedTukeyHSDTester(nSystems).WithNTrials(nTrials)
	if randomState != 0 {
		tester = tester.WithRandomState(randomState)
	} else if cfg.RandomState != 0 {
		tester = tester.WithRandomState(cfg.RandomState)
	}
	randomized, err := tester.Test(samples)
	if err != nil {
		return err
	}
	return report.WriteRandomizedTukeyHSD(out, names, randomized)
}

// systemName derives a display name from a score file path.
func systemName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
