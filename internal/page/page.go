// Package page defines the closed set of views the site can show.
package page

// ID identifies one of the site's views. The zero value is not a valid page;
// use Parse at every boundary where a page arrives as a raw string.
type ID string

const (
	Home  ID = "home"
	About ID = "about"
	Store ID = "store"
	Join  ID = "join"
	Ranks ID = "ranks"
)

// Default is the page shown when no valid page was requested.
const Default = Home

// all is the declaration order. Search walks pages in this order.
var all = []ID{Home, About, Store, Join, Ranks}

// labels are the navigation bar captions.
var labels = map[ID]string{
	Home:  "Home",
	About: "About",
	Store: "Store",
	Join:  "Join",
	Ranks: "Ranks",
}

// All returns every page in declaration order.
func All() []ID {
	out := make([]ID, len(all))
	copy(out, all)
	return out
}

// Parse returns the page whose identifier equals s exactly.
func Parse(s string) (ID, bool) {
	id := ID(s)
	if _, ok := labels[id]; !ok {
		return "", false
	}
	return id, true
}

// Valid reports whether p is one of the known pages.
func (p ID) Valid() bool {
	_, ok := labels[p]
	return ok
}

// Label returns the navigation caption for p.
func (p ID) Label() string {
	return labels[p]
}

// Fragment returns the location fragment that deep-links to p.
func (p ID) Fragment() string {
	return "#" + string(p)
}

func (p ID) String() string {
	return string(p)
}
