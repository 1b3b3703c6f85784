package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kampersanda/elinor/pkg/metrics"
	"github.com/kampersanda/elinor/pkg/stats"
)

func TestWriteEvaluation(t *testing.T) {
	results := []*metrics.Result{
		{
			Metric: metrics.Metric{Kind: metrics.KindPrecision, K: 3},
			Scores: map[string]float64{"q_1": 2.0 / 3.0, "q_2": 1.0 / 3.0},
			Mean:   0.5,
		},
		{
			Metric: metrics.Metric{Kind: metrics.KindAP},
			Scores: map[string]float64{"q_1": 5.0 / 6.0, "q_2": 1.0 / 6.0},
			Mean:   0.5,
		},
	}
	counts := metrics.Counts{NQueriesInTrue: 2, NQueriesInPred: 2, NDocsInPred: 6, NRelevantDocs: 4}

	var buf bytes.Buffer
	require.NoError(t, WriteEvaluation(&buf, results, counts))

	out := buf.String()
	assert.Contains(t, out, "precision@3")
	assert.Contains(t, out, "0.5000")
	assert.Contains(t, out, "n_queries_in_true")
	assert.Contains(t, out, "n_relevant_docs")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 6) // two metrics plus four counts

	// Every line is name<tab>value so the output splits cleanly.
	for _, line := range lines {
		assert.Len(t, strings.Split(line, "\t"), 2, "line %q", line)
	}
	assert.Equal(t, "precision@3\t0.5000", lines[0])
	assert.Equal(t, "n_queries_in_true\t2", lines[2])
}

func TestWritePerQueryCSV(t *testing.T) {
	results := []*metrics.Result{
		{
			Metric: metrics.Metric{Kind: metrics.KindAP},
			Scores: map[string]float64{"q_1": 0.5, "q_2": 0.25},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePerQueryCSV(&buf, []string{"q_1", "q_2"}, results))

	assert.Equal(t, "query_id,ap\nq_1,0.5\nq_2,0.25\n", buf.String())
}

func TestWriteStudentTTest(t *testing.T) {
	pairs := []stats.Pair{
		{A: 0.7, B: 0.5}, {A: 0.3, B: 0.1}, {A: 0.2, B: 0.0},
		{A: 0.6, B: 0.2}, {A: 0.4, B: 0.4}, {A: 0.4, B: 0.3},
	}
	test, err := stats.StudentTTestFromPairedSamples(pairs)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteStudentTTest(&buf, [2]string{"sys_a", "sys_b"}, test, 0.05))

	out := buf.String()
	assert.Contains(t, out, "sys_a - sys_b")
	assert.Contains(t, out, "t_stat")
	assert.Contains(t, out, "p_value")
	assert.Contains(t, out, "95.0% CI")
}

func TestWriteANOVAAndTukey(t *testing.T) {
	samples := [][]float64{
		{0.7, 0.5, 0.0}, {0.3, 0.1, 0.0}, {0.2, 0.0, 0.2},
		{0.6, 0.2, 0.1}, {0.4, 0.4, 0.3}, {0.4, 0.3, 0.3},
	}
	names := []string{"sys_a", "sys_b", "sys_c"}

	anova, err := stats.TwoWayANOVAFromTupledSamples(samples, 3)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WriteANOVA(&buf, names, anova, 0.05))
	assert.Contains(t, buf.String(), "between-system")
	assert.Contains(t, buf.String(), "sys_c")

	tukey, err := stats.TukeyHSDFromTupledSamples(samples, 3)
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, WriteTukeyHSD(&buf, names, tukey))
	assert.Contains(t, buf.String(), "sys_a - sys_b")
	assert.Contains(t, buf.String(), "effect_size")

	randomized, err := stats.NewRandomizedTukeyHSDTester(3).WithNTrials(100).WithRandomState(42).Test(samples)
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, WriteRandomizedTukeyHSD(&buf, names, randomized))
	assert.Contains(t, buf.String(), "random_state=42")
	assert.Contains(t, buf.String(), "sys_b - sys_c")
}
