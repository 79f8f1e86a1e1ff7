// Package analytics records search queries and page views in SQLite.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ploofyz/ploofyz-web/internal/db"
	"github.com/ploofyz/ploofyz-web/internal/page"
)

// Store manages persistence of search and navigation events.
type Store struct {
	db *db.DB
}

// NewStore creates a new analytics store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// RecordSearch stores an executed query and how many results it produced.
func (s *Store) RecordSearch(ctx context.Context, query string, results int) error {
	if query == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO search_queries (id, query, result_count, created_at) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), query, results, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting search query: %w", err)
	}
	return nil
}

// RecordNavigation stores a page view.
func (s *Store) RecordNavigation(ctx context.Context, sessionID string, p page.ID, source Source) error {
	if source == "" {
		source = SourceDirect
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO page_views (id, session_id, page, source, created_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), sessionID, string(p), string(source), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting page view: %w", err)
	}
	return nil
}

// PopularQueries returns the most frequent queries, most frequent first.
// Ties are broken by the most recent query.
func (s *Store) PopularQueries(ctx context.Context, limit int) ([]QueryCount, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT q.query, COUNT(*) AS n, MAX(q.created_at) AS last_seen,
		        (SELECT result_count FROM search_queries r WHERE r.query = q.query ORDER BY r.created_at DESC LIMIT 1)
		 FROM search_queries q
		 GROUP BY q.query
		 ORDER BY n DESC, last_seen DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying popular searches: %w", err)
	}
	defer rows.Close()

	var out []QueryCount
	for rows.Next() {
		var qc QueryCount
		var lastSeen string
		if err := rows.Scan(&qc.Query, &qc.Count, &lastSeen, &qc.LastResults); err != nil {
			return nil, fmt.Errorf("scanning popular search: %w", err)
		}
		qc.LastSeen = parseTime(lastSeen)
		out = append(out, qc)
	}
	return out, rows.Err()
}

// PageViews returns view counts for every page in declaration order,
// including pages that were never viewed.
func (s *Store) PageViews(ctx context.Context) ([]PageCount, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT page, COUNT(*) FROM page_views GROUP BY page`)
	if err != nil {
		return nil, fmt.Errorf("querying page views: %w", err)
	}
	defer rows.Close()

	counts := make(map[page.ID]int)
	for rows.Next() {
		var p string
		var n int
		if err := rows.Scan(&p, &n); err != nil {
			return nil, fmt.Errorf("scanning page views: %w", err)
		}
		counts[page.ID(p)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]PageCount, 0, len(page.All()))
	for _, p := range page.All() {
		out = append(out, PageCount{Page: p, Views: counts[p]})
	}
	return out, nil
}

// MAX() over a DATETIME column comes back as text from the sqlite driver.
func parseTime(s string) time.Time {
	for _, layout := range []string{
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05.999999999 -0700 MST",
		time.RFC3339Nano,
		"2006-01-02 15:04:05",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
