// Package content holds the static, searchable text of every page.
package content

import "github.com/ploofyz/ploofyz-web/internal/page"

// Entry is one searchable unit of page text.
type Entry struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Section string `json:"section"`
}

// Index maps each page to its entries in display order. An Index is
// immutable after construction and safe to share between goroutines.
type Index struct {
	entries map[page.ID][]Entry
}

// New builds an index from the given entries. The input is copied; pages
// absent from the map have no entries.
func New(entries map[page.ID][]Entry) *Index {
	idx := &Index{entries: make(map[page.ID][]Entry, len(entries))}
	for p, list := range entries {
		cp := make([]Entry, len(list))
		copy(cp, list)
		idx.entries[p] = cp
	}
	return idx
}

// EntriesFor returns the entries of p in index order.
func (idx *Index) EntriesFor(p page.ID) []Entry {
	list := idx.entries[p]
	out := make([]Entry, len(list))
	copy(out, list)
	return out
}

// Pages returns every page in declaration order.
func (idx *Index) Pages() []page.ID {
	return page.All()
}

// Len returns the total number of entries across all pages.
func (idx *Index) Len() int {
	n := 0
	for _, list := range idx.entries {
		n += len(list)
	}
	return n
}

// Default returns the index of the live site.
func Default() *Index {
	return New(defaultEntries)
}

var defaultEntries = map[page.ID][]Entry{
	page.Home: {
		{Title: "Play Better. Instantly.", Content: "Upgrade your Minecraft experience with premium hosting", Section: "Hero"},
		{Title: "Fast. Stable. Ready.", Content: "High-performance servers built for smooth gameplay", Section: "Features"},
		{Title: "Protected by Design", Content: "Enterprise-grade DDoS protection keeps your server online", Section: "Features"},
		{Title: "Closer to You", Content: "Malaysia-based hosting for better connection across SEA", Section: "Features"},
		{Title: "Server Ranks", Content: "VIP, Elite, Hero, Nexus, Phantom ranks with exclusive perks", Section: "Ranks"},
		{Title: "Choose Your Plan", Content: "Basic, Starter, Pro, Ultimate, Enterprise hosting plans", Section: "Pricing"},
	},
	page.About: {
		{Title: "About Us", Content: "Your trusted partner for Minecraft hosting in Southeast Asia", Section: "Hero"},
		{Title: "99.9% Uptime Guarantee", Content: "Reliable server performance", Section: "Stats"},
		{Title: "24/7 Support Available", Content: "Always here to help", Section: "Stats"},
		{Title: "Our Story", Content: "Founded by passionate gamers and tech enthusiasts", Section: "Story"},
		{Title: "High-Performance Hardware", Content: "AMD Ryzen processors and NVMe SSD storage", Section: "Features"},
	},
	page.Store: {
		{Title: "Server Store", Content: "Level up your gameplay with exclusive items and ranks", Section: "Hero"},
		{Title: "In-Game Currency", Content: "Buy coins to unlock items and perks", Section: "Categories"},
		{Title: "Premium Ranks", Content: "VIP, Elite, Hero, Nexus, Phantom ranks", Section: "Categories"},
		{Title: "Special Bundles", Content: "Limited-time packages with amazing discounts", Section: "Categories"},
		{Title: "Cosmetics", Content: "Particle effects, pets, and custom items", Section: "Categories"},
		{Title: "Instant Delivery", Content: "Items delivered immediately after purchase", Section: "Benefits"},
	},
	page.Join: {
		{Title: "Join Our Community", Content: "Connect with other players on Discord", Section: "Hero"},
		{Title: "Active Community", Content: "Connect with hundreds of players", Section: "Features"},
		{Title: "24/7 Support", Content: "Get help whenever you need it", Section: "Features"},
		{Title: "Events & Updates", Content: "Be the first to know about events", Section: "Features"},
		{Title: "Server Store", Content: "Support the server and get exclusive items", Section: "Store"},
	},
	page.Ranks: {
		{Title: "Server Ranks", Content: "Choose your rank to unlock exclusive perks", Section: "Hero"},
		{Title: "VIP Rank", Content: "Starter premium rank with chat badge and name color", Section: "Ranks"},
		{Title: "Elite Rank", Content: "More utilities and crafting access", Section: "Ranks"},
		{Title: "Hero Rank", Content: "Advanced tools and repair features", Section: "Ranks"},
		{Title: "Nexus Rank", Content: "Permanent rank with powerful utilities", Section: "Ranks"},
		{Title: "Phantom Rank", Content: "Top-tier rank with maximum perks", Section: "Ranks"},
	},
}
