package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ploofyz/ploofyz-web/internal/db"
	"github.com/ploofyz/ploofyz-web/internal/page"
	"github.com/ploofyz/ploofyz-web/internal/search"
)

// The store is plugged into the search engine as a recorder.
var _ search.Recorder = (*Store)(nil)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestRecordSearchAndPopular(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for _, q := range []string{"vip", "ranks", "vip", "discord", "vip", "ranks"} {
		if err := store.RecordSearch(ctx, q, 3); err != nil {
			t.Fatalf("RecordSearch(%q): %v", q, err)
		}
	}
	// Blank queries are not stored.
	if err := store.RecordSearch(ctx, "", 0); err != nil {
		t.Fatalf("RecordSearch blank: %v", err)
	}

	top, err := store.PopularQueries(ctx, 2)
	if err != nil {
		t.Fatalf("PopularQueries: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2, got %d", len(top))
	}
	if top[0].Query != "vip" || top[0].Count != 3 {
		t.Errorf("expected vip x3 first, got %+v", top[0])
	}
	if top[1].Query != "ranks" || top[1].Count != 2 {
		t.Errorf("expected ranks x2 second, got %+v", top[1])
	}
	if top[0].LastResults != 3 {
		t.Errorf("expected last_results 3, got %d", top[0].LastResults)
	}
}

func TestPageViews(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	views := []struct {
		p   page.ID
		src Source
	}{
		{page.Home, SourceDirect},
		{page.Store, SourceMenu},
		{page.Store, SourceSearch},
		{page.Ranks, SourceFragment},
		{page.Store, ""},
	}
	for _, v := range views {
		if err := store.RecordNavigation(ctx, "s1", v.p, v.src); err != nil {
			t.Fatalf("RecordNavigation: %v", err)
		}
	}

	counts, err := store.PageViews(ctx)
	if err != nil {
		t.Fatalf("PageViews: %v", err)
	}
	want := map[page.ID]int{page.Home: 1, page.About: 0, page.Store: 3, page.Join: 0, page.Ranks: 1}
	if len(counts) != len(want) {
		t.Fatalf("expected %d pages, got %d", len(want), len(counts))
	}
	for i, c := range counts {
		if c.Page != page.All()[i] {
			t.Errorf("counts[%d]: expected page %q, got %q", i, page.All()[i], c.Page)
		}
		if c.Views != want[c.Page] {
			t.Errorf("page %s: expected %d views, got %d", c.Page, want[c.Page], c.Views)
		}
	}
}

func TestRoute_PopularQueries(t *testing.T) {
	store := setupTestStore(t)
	store.RecordSearch(context.Background(), "store", 4)

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	req := httptest.NewRequest("GET", "/api/analytics/queries?limit=5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var got []QueryCount
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Query != "store" {
		t.Errorf("unexpected response: %+v", got)
	}
}

func TestRoute_PopularQueriesEmpty(t *testing.T) {
	store := setupTestStore(t)
	r := chi.NewRouter()
	RegisterRoutes(r, store)

	req := httptest.NewRequest("GET", "/api/analytics/queries", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", body)
	}
}

func TestRoute_PageViews(t *testing.T) {
	store := setupTestStore(t)
	store.RecordNavigation(context.Background(), "s", page.Join, SourceMenu)

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	req := httptest.NewRequest("GET", "/api/analytics/pages", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got []PageCount
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 5 || got[3].Page != page.Join || got[3].Views != 1 {
		t.Errorf("unexpected response: %+v", got)
	}
}
