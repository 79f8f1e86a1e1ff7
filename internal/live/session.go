package live

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"

	"github.com/ploofyz/ploofyz-web/internal/analytics"
	"github.com/ploofyz/ploofyz-web/internal/page"
	"github.com/ploofyz/ploofyz-web/internal/router"
	"github.com/ploofyz/ploofyz-web/internal/search"
)

// clientMessage is the incoming WebSocket message format.
type clientMessage struct {
	Type     string `json:"type"` // "hash", "navigate", "search" or "select"
	Fragment string `json:"fragment,omitempty"`
	Page     string `json:"page,omitempty"`
	Query    string `json:"query"`
}

// pageMessage tells the browser which page to show.
type pageMessage struct {
	Type      string  `json:"type"` // "page"
	SessionID string  `json:"session_id"`
	Page      page.ID `json:"page"`
	Fragment  string  `json:"fragment"`
	HTML      string  `json:"html"`
	ScrollTop bool    `json:"scroll_top"`
}

// resultsMessage answers a search message.
type resultsMessage struct {
	Type    string          `json:"type"` // "results"
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
}

// statusMessage carries errors and UI hints.
type statusMessage struct {
	Type      string `json:"type"` // "error" or "search_closed"
	SessionID string `json:"session_id"`
	Content   string `json:"content,omitempty"`
}

// session is one connected browser tab. Its router is only touched from
// the goroutine running run, which is also the only writer on conn.
type session struct {
	id          string
	hub         *Hub
	conn        *websocket.Conn
	router      *router.Router
	unsubscribe func()

	ctx           context.Context
	source        analytics.Source
	scrollPending bool
}

func (s *session) run(ctx context.Context) {
	s.ctx = ctx
	s.unsubscribe = s.router.Subscribe(s.onNavigate)

	// The page the router settled on before any interaction.
	initial := s.router.Current()
	s.hub.recordNavigation(ctx, s.id, initial, analytics.SourceDirect)
	s.sendPage(initial, false)

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("live: websocket read: %v", err)
			}
			return
		}

		var req clientMessage
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendError("invalid message format")
			continue
		}
		s.handle(req)
	}
}

func (s *session) handle(req clientMessage) {
	switch req.Type {
	case "hash":
		s.source = analytics.SourceFragment
		s.router.HandleFragment(req.Fragment)
	case "navigate":
		p, ok := page.Parse(req.Page)
		if !ok {
			s.sendError("unknown page: " + req.Page)
			return
		}
		s.source = analytics.SourceMenu
		s.router.Navigate(p)
	case "search":
		results := s.hub.engine.Query(s.ctx, req.Query)
		s.send(resultsMessage{Type: "results", Query: req.Query, Results: results})
	case "select":
		p, ok := page.Parse(req.Page)
		if !ok {
			s.sendError("unknown page: " + req.Page)
			return
		}
		s.source = analytics.SourceSearch
		s.router.Navigate(p)
		s.send(statusMessage{Type: "search_closed", SessionID: s.id})
	default:
		s.sendError("unknown message type: " + req.Type)
	}
}

// onNavigate runs synchronously inside Router.Navigate.
func (s *session) onNavigate(p page.ID) {
	scroll := s.scrollPending
	s.scrollPending = false

	source := s.source
	if source == "" {
		source = analytics.SourceDirect
	}
	s.source = ""

	s.hub.recordNavigation(s.ctx, s.id, p, source)
	s.sendPage(p, scroll)
}

func (s *session) sendPage(p page.ID, scrollTop bool) {
	body, err := s.hub.renderer.RenderPage(p)
	if err != nil {
		s.sendError("rendering page failed: " + err.Error())
		return
	}
	s.send(pageMessage{
		Type:      "page",
		SessionID: s.id,
		Page:      p,
		Fragment:  p.Fragment(),
		HTML:      string(body),
		ScrollTop: scrollTop,
	})
}

func (s *session) sendError(message string) {
	s.send(statusMessage{Type: "error", SessionID: s.id, Content: message})
}

func (s *session) send(v any) {
	if err := writeJSON(s.conn, v); err != nil {
		log.Printf("live: websocket write: %v", err)
	}
}
