package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
)

// ScoreTable holds per-query scores for one system, one column per
// metric, as produced by the evaluate command's CSV output.
type ScoreTable struct {
	Metrics []string
	// Scores maps metric name to query id to score.
	Scores map[string]map[string]float64
}

// QueryIDs returns the table's query ids in ascending order.
func (t *ScoreTable) QueryIDs() []string {
	if len(t.Metrics) == 0 {
		return nil
	}
	ids := make([]string, 0, len(t.Scores[t.Metrics[0]]))
	for queryID := range t.Scores[t.Metrics[0]] {
		ids = append(ids, queryID)
	}
	slices.Sort(ids)
	return ids
}

// Column returns the per-query scores for one metric.
func (t *ScoreTable) Column(metric string) (map[string]float64, bool) {
	col, ok := t.Scores[metric]
	return col, ok
}

// LoadScoreTable reads a per-query score CSV. The header row must start
// with query_id followed by one metric name per column.
func LoadScoreTable(path string) (*ScoreTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err != nil {
		return nil, &ParseError{File: path, Line: 1, Msg: "missing header row"}
	}
	if len(header) < 2 || header[0] != "query_id" {
		return nil, &ParseError{File: path, Line: 1,
			Msg: "header must be query_id followed by metric names"}
	}
	table := &ScoreTable{
		Metrics: header[1:],
		Scores:  make(map[string]map[string]float64, len(header)-1),
	}
	for _, metric := range table.Metrics {
		if _, dup := table.Scores[metric]; dup {
			return nil, &ParseError{File: path, Line: 1,
				Msg: fmt.Sprintf("duplicate metric column %q", metric)}
		}
		table.Scores[metric] = make(map[string]float64)
	}

	lineNo := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		lineNo++
		if err != nil {
			// csv.Reader reports short or long rows as ErrFieldCount and
			// bad quoting as a parse error; either way the table would be
			// silently truncated if this returned success.
			return nil, &ParseError{File: path, Line: lineNo, Msg: err.Error()}
		}
		if len(row) != len(header) {
			return nil, &ParseError{File: path, Line: lineNo,
				Msg: fmt.Sprintf("expected %d columns, got %d", len(header), len(row))}
		}
		queryID := row[0]
		for i, metric := range table.Metrics {
			score, err := strconv.ParseFloat(row[i+1], 64)
			if err != nil {
				return nil, &ParseError{File: path, Line: lineNo,
					Msg: fmt.Sprintf("invalid score %q", row[i+1])}
			}
			if _, dup := table.Scores[metric][queryID]; dup {
				return nil, &ParseError{File: path, Line: lineNo,
					Msg: fmt.Sprintf("duplicate query id %q", queryID)}
			}
			table.Scores[metric][queryID] = score
		}
	}
	return table, nil
}
