// Package live keeps a Router per browser session over a websocket. The
// browser reports location fragment changes, menu clicks and search input;
// the server answers with page bodies and search results.
package live

import (
	"context"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ploofyz/ploofyz-web/internal/analytics"
	"github.com/ploofyz/ploofyz-web/internal/page"
	"github.com/ploofyz/ploofyz-web/internal/router"
	"github.com/ploofyz/ploofyz-web/internal/search"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// PageRenderer renders a page body.
type PageRenderer interface {
	RenderPage(p page.ID) (template.HTML, error)
}

// NavigationRecorder stores page views.
type NavigationRecorder interface {
	RecordNavigation(ctx context.Context, sessionID string, p page.ID, source analytics.Source) error
}

// SessionObserver is told about session lifecycle and navigations.
type SessionObserver interface {
	SessionOpened()
	SessionClosed()
	RecordNavigation(p page.ID, source string)
}

// Hub accepts websocket connections and tracks the open sessions.
type Hub struct {
	renderer PageRenderer
	engine   *search.Engine
	home     page.ID
	recorder NavigationRecorder
	observer SessionObserver

	mu       sync.Mutex
	sessions map[string]*session
}

// NewHub creates a Hub. recorder and observer may be nil.
func NewHub(renderer PageRenderer, engine *search.Engine, home page.ID, recorder NavigationRecorder, observer SessionObserver) *Hub {
	if !home.Valid() {
		home = page.Default
	}
	return &Hub{
		renderer: renderer,
		engine:   engine,
		home:     home,
		recorder: recorder,
		observer: observer,
		sessions: make(map[string]*session),
	}
}

// RegisterRoutes mounts the websocket endpoint.
func RegisterRoutes(r chi.Router, h *Hub) {
	r.Get("/ws", h.ServeHTTP)
}

// Count returns the number of open sessions.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// CloseAll closes every open connection. Used on server shutdown, since
// hijacked connections outlive http.Server.Shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.sessions {
		s.conn.Close()
	}
}

// ServeHTTP upgrades the request and runs the session until the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("live: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	s := h.open(conn, r.URL.Query().Get("fragment"))
	defer h.close(s)

	s.run(r.Context())
}

func (h *Hub) open(conn *websocket.Conn, fragment string) *session {
	s := &session{
		id:   uuid.New().String(),
		hub:  h,
		conn: conn,
	}
	s.router = router.New(fragment,
		router.WithDefault(h.home),
		router.WithScroller(router.ScrollFunc(func() { s.scrollPending = true })),
	)

	h.mu.Lock()
	h.sessions[s.id] = s
	h.mu.Unlock()

	if h.observer != nil {
		h.observer.SessionOpened()
	}
	return s
}

func (h *Hub) close(s *session) {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}

	h.mu.Lock()
	delete(h.sessions, s.id)
	h.mu.Unlock()

	if h.observer != nil {
		h.observer.SessionClosed()
	}
}

func (h *Hub) recordNavigation(ctx context.Context, sessionID string, p page.ID, source analytics.Source) {
	if h.observer != nil {
		h.observer.RecordNavigation(p, string(source))
	}
	if h.recorder == nil {
		return
	}
	if err := h.recorder.RecordNavigation(ctx, sessionID, p, source); err != nil {
		log.Printf("live: recording navigation to %s: %v", p, err)
	}
}

// writeJSON encodes v as a single text frame.
func writeJSON(conn *websocket.Conn, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}
