package loader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kampersanda/elinor/pkg/relevance"
)

// parseQrelsTREC reads the four-column qrels layout:
//
//	<query_id> <dummy> <doc_id> <grade>
//
// The second column (usually an iteration marker) is ignored. A later
// line for the same (query, doc) pair overwrites the earlier grade.
func parseQrelsTREC(path string, r io.Reader) (*relevance.TrueStore, error) {
	builder := relevance.NewTrueBuilder()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 4 {
			return nil, &ParseError{File: path, Line: lineNo,
				Msg: fmt.Sprintf("expected 4 columns, got %d", len(fields))}
		}
		grade, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, &ParseError{File: path, Line: lineNo,
				Msg: fmt.Sprintf("invalid relevance grade %q", fields[3])}
		}
		if err := builder.Put(fields[0], fields[2], grade); err != nil {
			return nil, &ParseError{File: path, Line: lineNo, Msg: err.Error()}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return builder.Build(), nil
}

// parseRunTREC reads the six-column run layout:
//
//	<query_id> <dummy> <doc_id> <rank> <score> <run_tag>
//
// Rank and run tag are ignored; ranking is derived from the scores. A
// duplicate (query, doc) pair fails the load.
func parseRunTREC(path string, r io.Reader) (*relevance.PredStore, error) {
	builder := relevance.NewPredBuilder()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 6 {
			return nil, &ParseError{File: path, Line: lineNo,
				Msg: fmt.Sprintf("expected 6 columns, got %d", len(fields))}
		}
		score, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return nil, &ParseError{File: path, Line: lineNo,
				Msg: fmt.Sprintf("invalid score %q", fields[4])}
		}
		if err := builder.Add(fields[0], fields[2], score); err != nil {
			return nil, &ParseError{File: path, Line: lineNo, Msg: err.Error()}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return builder.Build(), nil
}
