package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kampersanda/elinor/pkg/relevance"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeGzipFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
	return path
}

func TestLoadTrueStoreTREC(t *testing.T) {
	path := writeFile(t, "judgments.txt", `q_1 0 d_1 1
q_1 0 d_2 0
q_1 0 d_3 2

q_2 0 d_2 2
q_2 0 d_4 1
`)
	store, err := LoadTrueStore(path, FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, []string{"q_1", "q_2"}, store.QueryIDs())
	assert.Equal(t, 5, store.NDocs())

	grade, ok := store.Score("q_1", "d_3")
	require.True(t, ok)
	assert.Equal(t, 2, grade)
}

// A later qrels line for the same pair replaces the earlier grade.
func TestLoadTrueStoreDuplicateOverwrites(t *testing.T) {
	path := writeFile(t, "judgments.txt", `q_1 0 d_1 1
q_1 0 d_1 2
`)
	store, err := LoadTrueStore(path, FormatTREC)
	require.NoError(t, err)
	grade, ok := store.Score("q_1", "d_1")
	require.True(t, ok)
	assert.Equal(t, 2, grade)
}

func TestLoadTrueStoreRejectsNegativeGrade(t *testing.T) {
	path := writeFile(t, "judgments.txt", "q_1 0 d_1 -1\n")
	_, err := LoadTrueStore(path, FormatTREC)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 1, parseErr.Line)
}

func TestLoadTrueStoreBadColumns(t *testing.T) {
	path := writeFile(t, "judgments.txt", "q_1 0 d_1 1\nq_2 d_1 1\n")
	_, err := LoadTrueStore(path, FormatTREC)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Line)
}

func TestLoadPredStoreTRECRun(t *testing.T) {
	path := writeFile(t, "run.txt", `q_1 Q0 d_1 1 0.5 sys
q_1 Q0 d_2 2 0.4 sys
q_2 Q0 d_3 1 0.3 sys
`)
	store, err := LoadPredStore(path, FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, 2, store.NQueries())

	sorted := store.Sorted("q_1")
	require.Len(t, sorted, 2)
	assert.Equal(t, relevance.Entry[float64]{DocID: "d_1", Score: 0.5}, sorted[0])
}

func TestLoadPredStoreDuplicateFails(t *testing.T) {
	path := writeFile(t, "run.txt", `q_1 Q0 d_1 1 0.5 sys
q_1 Q0 d_1 2 0.4 sys
`)
	_, err := LoadPredStore(path, FormatTREC)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Line)
}

func TestLoadTrueStoreJSONL(t *testing.T) {
	path := writeFile(t, "judgments.jsonl", `{"query_id": "q_1", "doc_id": "d_1", "score": 1}
{"query_id": "q_1", "doc_id": "d_2", "score": 0}
{"query_id": "q_2", "doc_id": "d_2", "score": 2}
`)
	store, err := LoadTrueStore(path, FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, 2, store.NQueries())
	assert.Equal(t, 3, store.NDocs())
}

func TestLoadPredStoreJSONL(t *testing.T) {
	path := writeFile(t, "run.jsonl", `{"query_id": "q_1", "doc_id": "d_1", "score": 0.5}
{"query_id": "q_1", "doc_id": "d_2", "score": 0.4}
`)
	store, err := LoadPredStore(path, FormatAuto)
	require.NoError(t, err)
	score, ok := store.Score("q_1", "d_2")
	require.True(t, ok)
	assert.Equal(t, 0.4, score)
}

func TestLoadPredStoreJSONLBadLine(t *testing.T) {
	path := writeFile(t, "run.jsonl", `{"query_id": "q_1", "doc_id": "d_1", "score": 0.5}
not json
`)
	_, err := LoadPredStore(path, FormatJSONL)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Line)
}

func TestLoadGzipTransparently(t *testing.T) {
	path := writeGzipFile(t, "judgments.jsonl.gz", `{"query_id": "q_1", "doc_id": "d_1", "score": 1}
`)
	store, err := LoadTrueStore(path, FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, 1, store.NDocs())
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"auto", "trec", "jsonl"} {
		format, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, Format(s), format)
	}
	_, err := ParseFormat("csv")
	require.Error(t, err)
}

func TestLoadScoreTable(t *testing.T) {
	path := writeFile(t, "scores.csv", `query_id,precision@3,ap
q_1,0.6666666666666666,0.8333333333333333
q_2,0.3333333333333333,0.16666666666666666
`)
	table, err := LoadScoreTable(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"precision@3", "ap"}, table.Metrics)
	assert.Equal(t, []string{"q_1", "q_2"}, table.QueryIDs())

	col, ok := table.Column("ap")
	require.True(t, ok)
	assert.InDelta(t, 5.0/6.0, col["q_1"], 1e-9)
	assert.InDelta(t, 1.0/6.0, col["q_2"], 1e-9)

	_, ok = table.Column("rr")
	assert.False(t, ok)
}

func TestLoadScoreTableBadHeader(t *testing.T) {
	path := writeFile(t, "scores.csv", "topic,ap\nq_1,0.5\n")
	_, err := LoadScoreTable(path)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 1, parseErr.Line)
}

func TestLoadScoreTableDuplicateQuery(t *testing.T) {
	path := writeFile(t, "scores.csv", "query_id,ap\nq_1,0.5\nq_1,0.6\n")
	_, err := LoadScoreTable(path)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 3, parseErr.Line)
}

// A malformed row must abort the load rather than silently truncating
// the table to the rows before it.
func TestLoadScoreTableBadQuotingAborts(t *testing.T) {
	path := writeFile(t, "scores.csv", "query_id,ap\nq_1,0.5\nq_2,\"0.3\nq_3,0.7\n")
	_, err := LoadScoreTable(path)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestLoadScoreTableShortRowAborts(t *testing.T) {
	path := writeFile(t, "scores.csv", "query_id,ap\nq_1,0.5\nq_2\nq_3,0.7\n")
	_, err := LoadScoreTable(path)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 3, parseErr.Line)
}

func TestLoadScoreTableBadScore(t *testing.T) {
	path := writeFile(t, "scores.csv", "query_id,ap\nq_1,abc\n")
	_, err := LoadScoreTable(path)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Line)
}
