package site

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ploofyz/ploofyz-web/internal/page"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(Options{
		Brand:      "Ploofyz",
		StoreURL:   "https://store.example.test",
		DiscordURL: "https://discord.example.test/invite",
	})
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func TestRenderEveryPage(t *testing.T) {
	r := newTestRenderer(t)
	wantTitles := map[page.ID]string{
		page.Home:  "Play Better. Instantly.",
		page.About: "About Us",
		page.Store: "Server Store",
		page.Join:  "Join Our Community",
		page.Ranks: "Server Ranks",
	}
	for _, p := range page.All() {
		body, err := r.RenderPage(p)
		if err != nil {
			t.Fatalf("RenderPage(%s): %v", p, err)
		}
		if !strings.Contains(string(body), "<h1") {
			t.Errorf("page %s: expected an h1 heading", p)
		}
		if got := r.Title(p); got != wantTitles[p] {
			t.Errorf("page %s: title %q, want %q", p, got, wantTitles[p])
		}
		if strings.Contains(string(body), "$STORE_URL") || strings.Contains(string(body), "$DISCORD_URL") {
			t.Errorf("page %s: link placeholder left unreplaced", p)
		}
	}
}

func TestRenderSubstitutesLinks(t *testing.T) {
	r := newTestRenderer(t)

	join, _ := r.RenderPage(page.Join)
	if !strings.Contains(string(join), `href="https://discord.example.test/invite"`) {
		t.Error("join page should link to the configured discord invite")
	}
	store, _ := r.RenderPage(page.Store)
	if !strings.Contains(string(store), `href="https://store.example.test"`) {
		t.Error("store page should link to the configured store")
	}
	home, _ := r.RenderPage(page.Home)
	if !strings.Contains(string(home), "<table>") {
		t.Error("home page tables should render as HTML tables")
	}
}

func TestRenderUnknownPage(t *testing.T) {
	r := newTestRenderer(t)
	if _, err := r.RenderPage("pricing"); !errors.Is(err, ErrUnknownPage) {
		t.Errorf("expected ErrUnknownPage, got %v", err)
	}
	var buf bytes.Buffer
	if err := r.RenderDocument(&buf, "pricing"); !errors.Is(err, ErrUnknownPage) {
		t.Errorf("expected ErrUnknownPage from RenderDocument, got %v", err)
	}
	if err := r.RenderStatic(&buf, ""); !errors.Is(err, ErrUnknownPage) {
		t.Errorf("expected ErrUnknownPage from RenderStatic, got %v", err)
	}
}

func TestRenderDocumentMarksActivePage(t *testing.T) {
	r := newTestRenderer(t)
	var buf bytes.Buffer
	if err := r.RenderDocument(&buf, page.Store); err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `data-mode="live"`) {
		t.Error("expected live mode document")
	}
	if !strings.Contains(out, `class="nav-link active" href="/#store" data-page="store"`) {
		t.Error("expected store nav link to be active")
	}
	if strings.Contains(out, `class="nav-link active" href="/#home"`) {
		t.Error("home nav link should not be active")
	}
	if !strings.Contains(out, "<title>Server Store | Ploofyz</title>") {
		t.Error("expected page title in document")
	}
	if !strings.Contains(out, "Try searching for: ranks, pricing, hosting, discord, store, VIP, Pro plan") {
		t.Error("expected search hints in document")
	}
	// Only the current page body is embedded.
	if strings.Contains(out, "Join Our Community") {
		t.Error("live document should only contain the current page")
	}
}

func TestRenderStaticContainsAllPages(t *testing.T) {
	r := newTestRenderer(t)
	var buf bytes.Buffer
	if err := r.RenderStatic(&buf, page.Ranks); err != nil {
		t.Fatalf("RenderStatic: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `data-mode="static"`) {
		t.Error("expected static mode document")
	}
	for _, p := range page.All() {
		if !strings.Contains(out, `data-page="`+string(p)+`"`) {
			t.Errorf("expected section for %s", p)
		}
	}
	if !strings.Contains(out, `<section class="page-container" data-page="ranks">`) {
		t.Error("ranks section should be visible")
	}
	if !strings.Contains(out, `<section class="page-container" data-page="home" hidden>`) {
		t.Error("home section should be hidden")
	}
	if !strings.Contains(out, `src="client.js"`) {
		t.Error("static document should reference client.js relatively")
	}
}
