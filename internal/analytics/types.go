package analytics

import (
	"time"

	"github.com/ploofyz/ploofyz-web/internal/page"
)

// Source records how a visitor arrived at a page.
type Source string

const (
	SourceDirect   Source = "direct"
	SourceFragment Source = "fragment"
	SourceMenu     Source = "menu"
	SourceSearch   Source = "search"
)

// QueryCount is an aggregated search query.
type QueryCount struct {
	Query       string    `json:"query"`
	Count       int       `json:"count"`
	LastResults int       `json:"last_results"`
	LastSeen    time.Time `json:"last_seen"`
}

// PageCount is an aggregated page view count.
type PageCount struct {
	Page  page.ID `json:"page"`
	Views int     `json:"views"`
}
