package loader

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/kampersanda/elinor/pkg/relevance"
)

// parseTrueJSONL reads judgment records, one JSON object per line:
//
//	{"query_id": "q_1", "doc_id": "d_1", "score": 2}
func parseTrueJSONL(path string, r io.Reader) (*relevance.TrueStore, error) {
	builder := relevance.NewTrueBuilder()
	err := forEachJSONLine(path, r, func(lineNo int, line []byte) error {
		var rec relevance.Record[int]
		if err := sonic.Unmarshal(line, &rec); err != nil {
			return &ParseError{File: path, Line: lineNo, Msg: err.Error()}
		}
		if err := builder.Put(rec.QueryID, rec.DocID, rec.Score); err != nil {
			return &ParseError{File: path, Line: lineNo, Msg: err.Error()}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return builder.Build(), nil
}

// parsePredJSONL reads prediction records, one JSON object per line:
//
//	{"query_id": "q_1", "doc_id": "d_1", "score": 0.5}
func parsePredJSONL(path string, r io.Reader) (*relevance.PredStore, error) {
	builder := relevance.NewPredBuilder()
	err := forEachJSONLine(path, r, func(lineNo int, line []byte) error {
		var rec relevance.Record[float64]
		if err := sonic.Unmarshal(line, &rec); err != nil {
			return &ParseError{File: path, Line: lineNo, Msg: err.Error()}
		}
		if err := builder.Add(rec.QueryID, rec.DocID, rec.Score); err != nil {
			return &ParseError{File: path, Line: lineNo, Msg: err.Error()}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return builder.Build(), nil
}

func forEachJSONLine(path string, r io.Reader, fn func(lineNo int, line []byte) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := fn(lineNo, []byte(line)); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
