// Package loader reads judgment and prediction files in the TREC and
// JSONL formats into relevance stores.
package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog/log"

	"github.com/kampersanda/elinor/pkg/relevance"
)

// Format selects the on-disk record layout.
type Format string

const (
	// FormatAuto picks by file extension: .json/.jsonl are JSONL,
	// anything else is TREC. A .gz suffix is stripped first.
	FormatAuto  Format = "auto"
	FormatTREC  Format = "trec"
	FormatJSONL Format = "jsonl"
)

// ParseFormat validates a format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatAuto, FormatTREC, FormatJSONL:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format: %s (want auto, trec, or jsonl)", s)
}

// LoadTrueStore reads a judgment file into a TrueStore. A later record
// for the same (query, doc) pair overwrites the earlier one.
func LoadTrueStore(path string, format Format) (*relevance.TrueStore, error) {
	r, closeAll, err := openMaybeGzip(path)
	if err != nil {
		return nil, err
	}
	defer closeAll()

	var store *relevance.TrueStore
	switch resolveFormat(path, format) {
	case FormatJSONL:
		store, err = parseTrueJSONL(path, r)
	default:
		store, err = parseQrelsTREC(path, r)
	}
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Int("n_queries", store.NQueries()).Int("n_docs", store.NDocs()).
		Msg("loaded judgments")
	return store, nil
}

// LoadPredStore reads a prediction file into a PredStore. Duplicate
// (query, doc) pairs fail with a SchemaError.
func LoadPredStore(path string, format Format) (*relevance.PredStore, error) {
	r, closeAll, err := openMaybeGzip(path)
	if err != nil {
		return nil, err
	}
	defer closeAll()

	var store *relevance.PredStore
	switch resolveFormat(path, format) {
	case FormatJSONL:
		store, err = parsePredJSONL(path, r)
	default:
		store, err = parseRunTREC(path, r)
	}
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Int("n_queries", store.NQueries()).Int("n_docs", store.NDocs()).
		Msg("loaded predictions")
	return store, nil
}

func resolveFormat(path string, format Format) Format {
	if format != FormatAuto {
		return format
	}
	name := strings.TrimSuffix(path, ".gz")
	switch filepath.Ext(name) {
	case ".json", ".jsonl":
		return FormatJSONL
	}
	return FormatTREC
}

func openMaybeGzip(path string) (io.Reader, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, func() { f.Close() }, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return gz, func() {
		gz.Close()
		f.Close()
	}, nil
}
