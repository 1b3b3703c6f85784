package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/kampersanda/elinor/pkg/metrics"
)

// WritePerQueryCSV emits one row per evaluated query with a column per
// metric, preceded by a header row. Queries appear in ascending id
// order; this is the interchange format the compare command consumes.
func WritePerQueryCSV(w io.Writer, queryIDs []string, results []*metrics.Result) error {
	cw := csv.NewWriter(w)
	header := make([]string, 0, len(results)+1)
	header = append(header, "query_id")
	for _, r := range results {
		header = append(header, r.Metric.String())
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for _, queryID := range queryIDs {
		row[0] = queryID
		for i, r := range results {
			row[i+1] = strconv.FormatFloat(r.Scores[queryID], 'f', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
