// Package relevance stores graded judgments and predicted scores per query.
package relevance

import (
	"cmp"
	"fmt"
	"slices"
)

// Scorable covers the two score domains: integer relevance grades for
// judgments and real-valued ranking scores for predictions.
type Scorable interface {
	~int | ~float64
}

// Record is a single (query, document, score) tuple.
type Record[T Scorable] struct {
	QueryID string `json:"query_id"`
	DocID   string `json:"doc_id"`
	Score   T      `json:"score"`
}

// Entry is a scored document within one query.
type Entry[T Scorable] struct {
	DocID string
	Score T
}

type queryData[T Scorable] struct {
	sorted []Entry[T]
	byDoc  map[string]T
}

// Store maps query ids to their scored documents. It is built once by a
// Builder and immutable afterwards. The sorted view orders documents by
// score descending with ties broken by doc id ascending, which pins a
// total order reproducible across runs.
type Store[T Scorable] struct {
	data     map[string]*queryData[T]
	queryIDs []string
}

// TrueStore holds graded relevance judgments.
type TrueStore = Store[int]

// PredStore holds predicted ranking scores.
type PredStore = Store[float64]

// QueryIDs returns all query ids in ascending order.
func (s *Store[T]) QueryIDs() []string {
	return s.queryIDs
}

// HasQuery reports whether the query id is present.
func (s *Store[T]) HasQuery(queryID string) bool {
	_, ok := s.data[queryID]
	return ok
}

// Map returns the doc id to score mapping for a query, or nil if the
// query is absent.
func (s *Store[T]) Map(queryID string) map[string]T {
	if d, ok := s.data[queryID]; ok {
		return d.byDoc
	}
	return nil
}

// Sorted returns the query's documents ordered by score descending,
// ties by doc id ascending. Nil if the query is absent.
func (s *Store[T]) Sorted(queryID string) []Entry[T] {
	if d, ok := s.data[queryID]; ok {
		return d.sorted
	}
	return nil
}

// Score returns the score for a (query, doc) pair.
func (s *Store[T]) Score(queryID, docID string) (T, bool) {
	d, ok := s.data[queryID]
	if !ok {
		var zero T
		return zero, false
	}
	score, ok := d.byDoc[docID]
	return score, ok
}

// NQueries returns the number of queries in the store.
func (s *Store[T]) NQueries() int {
	return len(s.queryIDs)
}

// NDocs returns the total number of documents across all queries.
func (s *Store[T]) NDocs() int {
	n := 0
	for _, d := range s.data {
		n += len(d.byDoc)
	}
	return n
}

// Records flattens the store back into records, queries in ascending
// order and documents in ranked order.
func (s *Store[T]) Records() []Record[T] {
	var records []Record[T]
	for _, queryID := range s.queryIDs {
		for _, e := range s.data[queryID].sorted {
			records = append(records, Record[T]{QueryID: queryID, DocID: e.DocID, Score: e.Score})
		}
	}
	return records
}

// NRelevant counts judged documents with a positive grade across all
// queries of a judgment store.
func NRelevant(s *TrueStore) int {
	n := 0
	for _, d := range s.data {
		for _, grade := range d.byDoc {
			if grade > 0 {
				n++
			}
		}
	}
	return n
}

// Builder accumulates records and produces an immutable Store.
type Builder[T Scorable] struct {
	m        map[string]map[string]T
	validate func(queryID, docID string, score T) error
}

// NewBuilder creates a builder with no score validation.
func NewBuilder[T Scorable]() *Builder[T] {
	return &Builder[T]{m: make(map[string]map[string]T)}
}

// NewTrueBuilder creates a builder for judgment stores. Negative grades
// are rejected with a SchemaError.
func NewTrueBuilder() *Builder[int] {
	b := NewBuilder[int]()
	b.validate = func(queryID, docID string, grade int) error {
		if grade < 0 {
			return &SchemaError{msg: fmt.Sprintf(
				"relevance grade must be non-negative, but got query_id=%s, doc_id=%s, grade=%d",
				queryID, docID, grade)}
		}
		return nil
	}
	return b
}

// NewPredBuilder creates a builder for prediction stores.
func NewPredBuilder() *Builder[float64] {
	return NewBuilder[float64]()
}

// Add inserts a record, failing with a SchemaError when the
// (query, doc) pair is already present.
func (b *Builder[T]) Add(queryID, docID string, score T) error {
	if b.validate != nil {
		if err := b.validate(queryID, docID, score); err != nil {
			return err
		}
	}
	docs, ok := b.m[queryID]
	if !ok {
		docs = make(map[string]T)
		b.m[queryID] = docs
	}
	if _, dup := docs[docID]; dup {
		return &SchemaError{msg: fmt.Sprintf(
			"query-doc pair must be unique, but got query_id=%s, doc_id=%s", queryID, docID)}
	}
	docs[docID] = score
	return nil
}

// Put inserts a record, overwriting any earlier score for the same
// (query, doc) pair. Judgment sources use this: a later judgment for the
// same pair replaces the earlier one.
func (b *Builder[T]) Put(queryID, docID string, score T) error {
	if b.validate != nil {
		if err := b.validate(queryID, docID, score); err != nil {
			return err
		}
	}
	docs, ok := b.m[queryID]
	if !ok {
		docs = make(map[string]T)
		b.m[queryID] = docs
	}
	docs[docID] = score
	return nil
}

// Build freezes the accumulated records into a Store.
func (b *Builder[T]) Build() *Store[T] {
	data := make(map[string]*queryData[T], len(b.m))
	queryIDs := make([]string, 0, len(b.m))
	for queryID, docs := range b.m {
		sorted := make([]Entry[T], 0, len(docs))
		for docID, score := range docs {
			sorted = append(sorted, Entry[T]{DocID: docID, Score: score})
		}
		slices.SortFunc(sorted, func(a, x Entry[T]) int {
			if c := cmp.Compare(x.Score, a.Score); c != 0 {
				return c
			}
			return cmp.Compare(a.DocID, x.DocID)
		})
		data[queryID] = &queryData[T]{sorted: sorted, byDoc: docs}
		queryIDs = append(queryIDs, queryID)
	}
	slices.Sort(queryIDs)
	return &Store[T]{data: data, queryIDs: queryIDs}
}

// FromRecords builds a store from records using Add semantics.
func FromRecords[T Scorable](b *Builder[T], records []Record[T]) (*Store[T], error) {
	for _, r := range records {
		if err := b.Add(r.QueryID, r.DocID, r.Score); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}
