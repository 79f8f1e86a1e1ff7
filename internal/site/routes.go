package site

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ploofyz/ploofyz-web/internal/content"
	"github.com/ploofyz/ploofyz-web/internal/page"
	"github.com/ploofyz/ploofyz-web/internal/search"
)

// maxSearchLimit caps the limit a client may request.
const maxSearchLimit = 20

// Handler serves the site pages and the page/search JSON API.
type Handler struct {
	renderer  *Renderer
	engine    *search.Engine
	home      page.ID
	staticDir string
}

// NewHandler creates a Handler. home is the page served at "/".
func NewHandler(renderer *Renderer, engine *search.Engine, home page.ID, staticDir string) *Handler {
	if !home.Valid() {
		home = page.Default
	}
	return &Handler{renderer: renderer, engine: engine, home: home, staticDir: staticDir}
}

// RegisterRoutes mounts the page and API routes.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/style.css", serveAsset("text/css; charset=utf-8", cssContent))
	r.Get("/client.js", serveAsset("application/javascript; charset=utf-8", jsContent))
	if h.staticDir != "" {
		if info, err := os.Stat(h.staticDir); err == nil && info.IsDir() {
			r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(h.staticDir))))
		}
	}

	r.Get("/api/pages", h.handleListPages)
	r.Get("/api/pages/{page}", h.handleGetPage)
	r.Get("/api/search", h.handleSearch)
	r.Post("/api/search", h.handleSearch)

	r.Get("/", h.handleDocument)
	r.Get("/{page}", h.handleDocument)
}

// pageInfo describes a page in API responses.
type pageInfo struct {
	ID       page.ID `json:"id"`
	Label    string  `json:"label"`
	Fragment string  `json:"fragment"`
}

// pageResponse is the JSON response for /api/pages/{page}.
type pageResponse struct {
	pageInfo
	Title   string          `json:"title"`
	HTML    string          `json:"html"`
	Entries []content.Entry `json:"entries"`
}

// searchRequest is the JSON body for POST /api/search.
type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// searchResponse is the JSON response for /api/search.
type searchResponse struct {
	Query   string          `json:"query"`
	Count   int             `json:"count"`
	Results []search.Result `json:"results"`
	Hints   []string        `json:"hints,omitempty"`
}

func (h *Handler) handleDocument(w http.ResponseWriter, r *http.Request) {
	p := h.home
	if raw := chi.URLParam(r, "page"); raw != "" {
		var ok bool
		if p, ok = page.Parse(raw); !ok {
			http.NotFound(w, r)
			return
		}
	}

	var buf bytes.Buffer
	if err := h.renderer.RenderDocument(&buf, p); err != nil {
		log.Printf("site: rendering %s: %v", p, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (h *Handler) handleListPages(w http.ResponseWriter, r *http.Request) {
	pages := page.All()
	out := make([]pageInfo, len(pages))
	for i, p := range pages {
		out[i] = infoFor(p)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetPage(w http.ResponseWriter, r *http.Request) {
	p, ok := page.Parse(chi.URLParam(r, "page"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "page not found"})
		return
	}
	body, err := h.renderer.RenderPage(p)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, pageResponse{
		pageInfo: infoFor(p),
		Title:    h.renderer.Title(p),
		HTML:     string(body),
		Entries:  h.engine.Index().EntriesFor(p),
	})
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if r.Method == http.MethodPost {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	} else {
		q := r.URL.Query()
		req.Query = q.Get("q")
		if req.Query == "" {
			req.Query = q.Get("query")
		}
		if v := q.Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				req.Limit = n
			}
		}
	}

	limit := req.Limit
	if limit <= 0 || limit > maxSearchLimit {
		limit = h.engine.Limit()
	}

	results := h.engine.QueryLimit(r.Context(), req.Query, limit)
	resp := searchResponse{
		Query:   req.Query,
		Count:   len(results),
		Results: results,
	}
	if strings.TrimSpace(req.Query) == "" {
		resp.Hints = search.Hints
	}
	writeJSON(w, http.StatusOK, resp)
}

func infoFor(p page.ID) pageInfo {
	return pageInfo{ID: p, Label: p.Label(), Fragment: p.Fragment()}
}

func serveAsset(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Write([]byte(body))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
