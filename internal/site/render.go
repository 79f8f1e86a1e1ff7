// Package site renders the marketing pages and serves them over HTTP, live
// websocket sessions aside. It can also export the whole site as static files.
package site

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ploofyz/ploofyz-web/internal/page"
	"github.com/ploofyz/ploofyz-web/internal/search"
)

//go:embed pages/*.md
var pageFiles embed.FS

// ErrUnknownPage is returned when rendering a page that does not exist.
var ErrUnknownPage = errors.New("unknown page")

// Rendering modes for the layout.
const (
	ModeLive   = "live"
	ModeStatic = "static"
)

// Options configures a Renderer.
type Options struct {
	Brand       string
	StoreURL    string
	DiscordURL  string
	SearchLimit int
}

// Renderer turns the embedded markdown pages into HTML. All pages are
// converted once in NewRenderer; afterwards a Renderer is read-only and safe
// for concurrent use.
type Renderer struct {
	opts   Options
	layout *template.Template
	bodies map[page.ID]template.HTML
	titles map[page.ID]string
}

// navItem is one entry of the navigation bar.
type navItem struct {
	ID       page.ID
	Label    string
	Fragment string
	Active   bool
}

// section is one page body in a static document.
type section struct {
	ID     page.ID
	Body   template.HTML
	Active bool
}

// layoutData holds the data passed to the layout template.
type layoutData struct {
	Title    string
	Brand    string
	Mode     string
	Current  page.ID
	Limit    int
	BasePath string
	Nav      []navItem
	Hints    []string
	Body     template.HTML
	Sections []section
	Year     int
}

// NewRenderer converts every page and parses the layout.
func NewRenderer(opts Options) (*Renderer, error) {
	if opts.Brand == "" {
		opts.Brand = "Ploofyz"
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = search.DefaultLimit
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	layout, err := template.New("layout").Parse(layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing layout template: %w", err)
	}

	links := strings.NewReplacer(
		"$STORE_URL", opts.StoreURL,
		"$DISCORD_URL", opts.DiscordURL,
	)

	r := &Renderer{
		opts:   opts,
		layout: layout,
		bodies: make(map[page.ID]template.HTML),
		titles: make(map[page.ID]string),
	}
	for _, p := range page.All() {
		src, err := pageFiles.ReadFile("pages/" + string(p) + ".md")
		if err != nil {
			return nil, fmt.Errorf("reading page %s: %w", p, err)
		}
		text := links.Replace(string(src))

		var buf bytes.Buffer
		if err := md.Convert([]byte(text), &buf); err != nil {
			return nil, fmt.Errorf("converting page %s: %w", p, err)
		}
		r.bodies[p] = template.HTML(buf.String())
		r.titles[p] = extractTitle(text, p.Label())
	}
	return r, nil
}

// RenderPage returns the HTML body of p.
func (r *Renderer) RenderPage(p page.ID) (template.HTML, error) {
	body, ok := r.bodies[p]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPage, p)
	}
	return body, nil
}

// Title returns the first heading of p.
func (r *Renderer) Title(p page.ID) string {
	return r.titles[p]
}

// RenderDocument writes a full live-mode HTML document showing p.
func (r *Renderer) RenderDocument(w io.Writer, p page.ID) error {
	body, err := r.RenderPage(p)
	if err != nil {
		return err
	}
	data := r.baseData(p, ModeLive, "/")
	data.Body = body
	return r.layout.Execute(w, data)
}

// RenderStatic writes a static-mode HTML document containing every page,
// with current visible.
func (r *Renderer) RenderStatic(w io.Writer, current page.ID) error {
	if !current.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPage, current)
	}
	data := r.baseData(current, ModeStatic, "")
	for _, p := range page.All() {
		data.Sections = append(data.Sections, section{ID: p, Body: r.bodies[p], Active: p == current})
	}
	return r.layout.Execute(w, data)
}

func (r *Renderer) baseData(current page.ID, mode, basePath string) layoutData {
	nav := make([]navItem, 0, len(page.All()))
	for _, p := range page.All() {
		nav = append(nav, navItem{ID: p, Label: p.Label(), Fragment: p.Fragment(), Active: p == current})
	}
	return layoutData{
		Title:    r.titles[current],
		Brand:    r.opts.Brand,
		Mode:     mode,
		Current:  current,
		Limit:    r.opts.SearchLimit,
		BasePath: basePath,
		Nav:      nav,
		Hints:    search.Hints,
		Year:     time.Now().Year(),
	}
}

// extractTitle pulls the first # heading from markdown content, or falls back.
func extractTitle(content, fallback string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimPrefix(line, "# ")
		}
	}
	return fallback
}
