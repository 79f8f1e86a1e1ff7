package site

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/ploofyz/ploofyz-web/internal/content"
	"github.com/ploofyz/ploofyz-web/internal/page"
	"github.com/ploofyz/ploofyz-web/internal/progress"
)

// Exporter writes the site as a set of static files that work without the
// server: every page, the search index, and the client script.
type Exporter struct {
	Renderer     *Renderer
	Index        *content.Index
	OutputDir    string
	StaticDir    string
	AssetInclude []string
	Home         page.ID
	Concurrency  int
	Reporter     progress.Reporter

	mu   sync.Mutex
	done int
}

// ExportResult summarizes an export.
type ExportResult struct {
	Pages  int
	Assets int
}

// Export builds the static site in OutputDir.
func (e *Exporter) Export(ctx context.Context) (ExportResult, error) {
	if e.Renderer == nil || e.Index == nil {
		return ExportResult{}, fmt.Errorf("exporter needs a renderer and an index")
	}
	home := e.Home
	if !home.Valid() {
		home = page.Default
	}

	assets, err := e.collectAssets()
	if err != nil {
		return ExportResult{}, err
	}

	if err := os.MkdirAll(e.OutputDir, 0o755); err != nil {
		return ExportResult{}, fmt.Errorf("creating output dir: %w", err)
	}

	pages := page.All()
	// index.html, one file per page, then the three support files.
	total := 1 + len(pages) + 3 + len(assets)
	e.done = 0
	if e.Reporter != nil {
		e.Reporter.Start(total)
		defer e.Reporter.Finish()
	}

	if err := e.writeFile("style.css", []byte(cssContent)); err != nil {
		return ExportResult{}, err
	}
	if err := e.writeFile("client.js", []byte(jsContent)); err != nil {
		return ExportResult{}, err
	}
	if err := e.writeSearchIndex(); err != nil {
		return ExportResult{}, err
	}

	g, gctx := errgroup.WithContext(ctx)
	if e.Concurrency > 0 {
		g.SetLimit(e.Concurrency)
	}

	g.Go(func() error { return e.renderTo(gctx, "index.html", home) })
	for _, p := range pages {
		g.Go(func() error { return e.renderTo(gctx, string(p)+".html", p) })
	}
	for _, rel := range assets {
		g.Go(func() error { return e.copyAsset(gctx, rel) })
	}

	if err := g.Wait(); err != nil {
		return ExportResult{}, err
	}
	return ExportResult{Pages: 1 + len(pages), Assets: len(assets)}, nil
}

func (e *Exporter) renderTo(ctx context.Context, name string, p page.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := e.Renderer.RenderStatic(&buf, p); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	return e.writeFile(name, buf.Bytes())
}

func (e *Exporter) writeSearchIndex() error {
	data := make(map[page.ID][]content.Entry)
	for _, p := range e.Index.Pages() {
		data[p] = e.Index.EntriesFor(p)
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling search index: %w", err)
	}
	return e.writeFile("search-index.json", raw)
}

// collectAssets returns the static_dir files matching any include pattern,
// relative to static_dir, sorted and de-duplicated.
func (e *Exporter) collectAssets() ([]string, error) {
	if e.StaticDir == "" {
		return nil, nil
	}
	info, err := os.Stat(e.StaticDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("accessing static dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("static dir %s is not a directory", e.StaticDir)
	}

	fsys := os.DirFS(e.StaticDir)
	seen := make(map[string]bool)
	var out []string
	for _, pattern := range e.AssetInclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid asset pattern %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("matching %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

func (e *Exporter) copyAsset(ctx context.Context, rel string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	src, err := os.Open(filepath.Join(e.StaticDir, filepath.FromSlash(rel)))
	if err != nil {
		return fmt.Errorf("opening asset %s: %w", rel, err)
	}
	defer src.Close()

	name := filepath.Join("static", filepath.FromSlash(rel))
	dst := filepath.Join(e.OutputDir, name)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return fmt.Errorf("copying asset %s: %w", rel, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	e.advance(filepath.ToSlash(name))
	return nil
}

func (e *Exporter) writeFile(name string, data []byte) error {
	if err := os.WriteFile(filepath.Join(e.OutputDir, name), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	e.advance(name)
	return nil
}

func (e *Exporter) advance(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.done++
	if e.Reporter != nil {
		e.Reporter.Update(e.done, name)
	}
}
