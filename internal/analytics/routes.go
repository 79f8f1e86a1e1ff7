package analytics

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the analytics API routes.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/api/analytics", func(r chi.Router) {
		r.Get("/queries", handlePopularQueries(store))
		r.Get("/pages", handlePageViews(store))
	})
}

func handlePopularQueries(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 10
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}

		queries, err := store.PopularQueries(r.Context(), limit)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if queries == nil {
			queries = []QueryCount{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(queries)
	}
}

func handlePageViews(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := store.PageViews(r.Context())
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(views)
	}
}
