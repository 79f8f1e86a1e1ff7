package live

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/ploofyz/ploofyz-web/internal/analytics"
	"github.com/ploofyz/ploofyz-web/internal/content"
	"github.com/ploofyz/ploofyz-web/internal/db"
	"github.com/ploofyz/ploofyz-web/internal/metrics"
	"github.com/ploofyz/ploofyz-web/internal/page"
	"github.com/ploofyz/ploofyz-web/internal/search"
)

type stubRenderer struct{}

func (stubRenderer) RenderPage(p page.ID) (template.HTML, error) {
	return template.HTML("<h1>" + p.Label() + "</h1>"), nil
}

// wireMessage is the union of every server message.
type wireMessage struct {
	Type      string          `json:"type"`
	SessionID string          `json:"session_id"`
	Page      page.ID         `json:"page"`
	Fragment  string          `json:"fragment"`
	HTML      string          `json:"html"`
	ScrollTop bool            `json:"scroll_top"`
	Query     string          `json:"query"`
	Results   []search.Result `json:"results"`
	Content   string          `json:"content"`
}

type fixture struct {
	hub     *Hub
	store   *analytics.Store
	metrics *metrics.Metrics
	server  *httptest.Server
}

func setupTest(t *testing.T) *fixture {
	t.Helper()

	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	store := analytics.NewStore(database)
	m := metrics.New()
	engine := search.NewEngine(content.Default(), search.DefaultLimit)
	hub := NewHub(stubRenderer{}, engine, page.Home, store, m)

	r := chi.NewRouter()
	RegisterRoutes(r, hub)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return &fixture{hub: hub, store: store, metrics: m, server: server}
}

func (f *fixture) dial(t *testing.T, fragment string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws?fragment=" + url.QueryEscape(fragment)
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) wireMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg wireMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func write(t *testing.T, conn *websocket.Conn, msg clientMessage) {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestInitialPageFromFragment(t *testing.T) {
	f := setupTest(t)
	conn := f.dial(t, "#store")

	msg := read(t, conn)
	if msg.Type != "page" {
		t.Fatalf("expected page message, got %q", msg.Type)
	}
	if msg.Page != page.Store || msg.Fragment != "#store" {
		t.Errorf("expected store/#store, got %s/%s", msg.Page, msg.Fragment)
	}
	if msg.ScrollTop {
		t.Error("initial page should not request a scroll")
	}
	if msg.SessionID == "" {
		t.Error("expected a session id")
	}
	if msg.HTML != "<h1>Store</h1>" {
		t.Errorf("unexpected html %q", msg.HTML)
	}
}

func TestInitialPageDefaultsToHome(t *testing.T) {
	f := setupTest(t)

	for _, fragment := range []string{"", "#", "#nonsense", "#Store"} {
		conn := f.dial(t, fragment)
		msg := read(t, conn)
		if msg.Page != page.Home {
			t.Errorf("fragment %q: expected home, got %s", fragment, msg.Page)
		}
	}
}

func TestHashChanges(t *testing.T) {
	f := setupTest(t)
	conn := f.dial(t, "")
	read(t, conn)

	// Unknown fragments are ignored without a reply.
	write(t, conn, clientMessage{Type: "hash", Fragment: "#pricing"})
	write(t, conn, clientMessage{Type: "hash", Fragment: "#ranks"})

	msg := read(t, conn)
	if msg.Type != "page" || msg.Page != page.Ranks {
		t.Fatalf("expected page ranks, got %s %s", msg.Type, msg.Page)
	}
	if !msg.ScrollTop {
		t.Error("navigation should request scroll to top")
	}
	if msg.Fragment != "#ranks" {
		t.Errorf("expected #ranks, got %s", msg.Fragment)
	}
}

func TestNavigate(t *testing.T) {
	f := setupTest(t)
	conn := f.dial(t, "#about")
	read(t, conn)

	write(t, conn, clientMessage{Type: "navigate", Page: "pricing"})
	msg := read(t, conn)
	if msg.Type != "error" || !strings.Contains(msg.Content, "unknown page") {
		t.Fatalf("expected unknown page error, got %+v", msg)
	}

	// Navigating to the current page still notifies.
	write(t, conn, clientMessage{Type: "navigate", Page: "about"})
	msg = read(t, conn)
	if msg.Type != "page" || msg.Page != page.About {
		t.Fatalf("expected page about, got %s %s", msg.Type, msg.Page)
	}
}

func TestSearchAndSelect(t *testing.T) {
	f := setupTest(t)
	conn := f.dial(t, "")
	read(t, conn)

	write(t, conn, clientMessage{Type: "search", Query: "ranks"})
	msg := read(t, conn)
	if msg.Type != "results" {
		t.Fatalf("expected results, got %q", msg.Type)
	}
	if msg.Query != "ranks" {
		t.Errorf("expected query echoed, got %q", msg.Query)
	}
	if len(msg.Results) != search.DefaultLimit {
		t.Errorf("expected %d results, got %d", search.DefaultLimit, len(msg.Results))
	}

	write(t, conn, clientMessage{Type: "search", Query: "   "})
	msg = read(t, conn)
	if msg.Type != "results" || len(msg.Results) != 0 {
		t.Errorf("expected empty results for blank query, got %d", len(msg.Results))
	}

	write(t, conn, clientMessage{Type: "select", Page: "join"})
	msg = read(t, conn)
	if msg.Type != "page" || msg.Page != page.Join || !msg.ScrollTop {
		t.Fatalf("expected page join with scroll, got %+v", msg)
	}
	msg = read(t, conn)
	if msg.Type != "search_closed" {
		t.Errorf("expected search_closed, got %q", msg.Type)
	}
}

func TestUnknownMessages(t *testing.T) {
	f := setupTest(t)
	conn := f.dial(t, "")
	read(t, conn)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	msg := read(t, conn)
	if msg.Type != "error" || msg.Content != "invalid message format" {
		t.Errorf("expected invalid format error, got %+v", msg)
	}

	write(t, conn, clientMessage{Type: "teleport"})
	msg = read(t, conn)
	if msg.Type != "error" || !strings.Contains(msg.Content, "teleport") {
		t.Errorf("expected unknown type error, got %+v", msg)
	}
}

func TestNavigationsRecorded(t *testing.T) {
	f := setupTest(t)
	conn := f.dial(t, "#store")
	read(t, conn)

	write(t, conn, clientMessage{Type: "hash", Fragment: "#ranks"})
	read(t, conn)
	write(t, conn, clientMessage{Type: "navigate", Page: "ranks"})
	read(t, conn)

	views, err := f.store.PageViews(t.Context())
	if err != nil {
		t.Fatalf("page views: %v", err)
	}
	counts := make(map[page.ID]int)
	for _, v := range views {
		counts[v.Page] = v.Views
	}
	if counts[page.Store] != 1 || counts[page.Ranks] != 2 {
		t.Errorf("unexpected view counts: %v", counts)
	}

	if got := testutil.ToFloat64(f.metrics.NavigationCounter(page.Ranks, string(analytics.SourceFragment))); got != 1 {
		t.Errorf("expected 1 fragment navigation to ranks, got %v", got)
	}
	if got := testutil.ToFloat64(f.metrics.NavigationCounter(page.Ranks, string(analytics.SourceMenu))); got != 1 {
		t.Errorf("expected 1 menu navigation to ranks, got %v", got)
	}
}

func TestSessionLifecycle(t *testing.T) {
	f := setupTest(t)

	conn := f.dial(t, "")
	read(t, conn)
	if got := f.hub.Count(); got != 1 {
		t.Fatalf("expected 1 session, got %d", got)
	}
	if got := testutil.ToFloat64(f.metrics.SessionGauge()); got != 1 {
		t.Errorf("expected gauge 1, got %v", got)
	}

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()

	deadline := time.Now().Add(5 * time.Second)
	for f.hub.Count() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("session was not removed after close")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if got := testutil.ToFloat64(f.metrics.SessionGauge()); got != 0 {
		t.Errorf("expected gauge 0, got %v", got)
	}
}

func TestCloseAll(t *testing.T) {
	f := setupTest(t)
	conn := f.dial(t, "")
	read(t, conn)

	f.hub.CloseAll()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected read error after CloseAll")
	}
}
