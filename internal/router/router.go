// Package router tracks which page a visitor is looking at and keeps it in
// step with the browser's location fragment.
package router

import (
	"strings"

	"github.com/ploofyz/ploofyz-web/internal/page"
)

// Scroller is asked to bring the viewport back to the top after every
// navigation.
type Scroller interface {
	ScrollToTop()
}

// ScrollFunc adapts a function to Scroller.
type ScrollFunc func()

func (f ScrollFunc) ScrollToTop() { f() }

// Option configures a Router.
type Option func(*Router)

// WithScroller sets the viewport scroller.
func WithScroller(s Scroller) Option {
	return func(r *Router) { r.scroller = s }
}

// WithDefault overrides the page used when the initial fragment is absent
// or unknown. Invalid pages are ignored.
func WithDefault(p page.ID) Option {
	return func(r *Router) {
		if p.Valid() {
			r.current = p
		}
	}
}

type subscription struct {
	id int
	fn func(page.ID)
}

// Router owns the current page. Navigate is the only writer.
//
// A Router is not safe for concurrent use. Each session owns its Router and
// drives it from a single goroutine.
type Router struct {
	current  page.ID
	scroller Scroller
	subs     []subscription
	nextID   int
}

// New creates a Router and applies the initial fragment, so the first
// render already reflects a deep link.
func New(fragment string, opts ...Option) *Router {
	r := &Router{current: page.Default}
	for _, opt := range opts {
		opt(r)
	}
	if p, ok := ParseFragment(fragment); ok {
		r.current = p
	}
	return r
}

// ParseFragment strips an optional leading '#' and parses the remainder as
// a page identifier.
func ParseFragment(fragment string) (page.ID, bool) {
	return page.Parse(strings.TrimPrefix(fragment, "#"))
}

// Current returns the page being shown.
func (r *Router) Current() page.ID {
	return r.current
}

// Fragment returns the location fragment for the current page.
func (r *Router) Fragment() string {
	return r.current.Fragment()
}

// Navigate switches to p, scrolls to the top and notifies subscribers.
func (r *Router) Navigate(p page.ID) {
	r.current = p
	if r.scroller != nil {
		r.scroller.ScrollToTop()
	}
	for _, s := range r.snapshot() {
		s.fn(p)
	}
}

// HandleFragment reacts to a location fragment change. Unknown fragments
// are ignored and leave the current page untouched.
func (r *Router) HandleFragment(fragment string) bool {
	p, ok := ParseFragment(fragment)
	if !ok {
		return false
	}
	r.Navigate(p)
	return true
}

// Subscribe registers fn to run after every navigation. The returned
// function removes the subscription; calling it more than once is harmless.
func (r *Router) Subscribe(fn func(page.ID)) (unsubscribe func()) {
	id := r.nextID
	r.nextID++
	r.subs = append(r.subs, subscription{id: id, fn: fn})

	return func() {
		for i, s := range r.subs {
			if s.id == id {
				r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
				return
			}
		}
	}
}

// snapshot copies the subscriber list so callbacks may unsubscribe.
func (r *Router) snapshot() []subscription {
	out := make([]subscription, len(r.subs))
	copy(out, r.subs)
	return out
}
