package search

import (
	"context"
	"log"
)

// Recorder observes executed queries. Implementations must not influence
// results; errors are logged and dropped.
type Recorder interface {
	RecordSearch(ctx context.Context, query string, results int) error
}

// Engine binds an index and a result limit, and reports queries to any
// configured recorders.
type Engine struct {
	index     Index
	limit     int
	recorders []Recorder
}

// NewEngine creates an Engine. A non-positive limit falls back to DefaultLimit.
func NewEngine(idx Index, limit int, recorders ...Recorder) *Engine {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Engine{index: idx, limit: limit, recorders: recorders}
}

// Limit returns the configured result cap.
func (e *Engine) Limit() int { return e.limit }

// Index returns the underlying content index.
func (e *Engine) Index() Index { return e.index }

// Query runs Search with the engine's limit.
func (e *Engine) Query(ctx context.Context, query string) []Result {
	return e.QueryLimit(ctx, query, e.limit)
}

// QueryLimit runs Search with an explicit limit.
func (e *Engine) QueryLimit(ctx context.Context, query string, limit int) []Result {
	results := Search(query, e.index, limit)

	q := Normalize(query)
	if q == "" {
		return results
	}
	for _, r := range e.recorders {
		if err := r.RecordSearch(ctx, q, len(results)); err != nil {
			log.Printf("search: recording query %q: %v", q, err)
		}
	}
	return results
}
