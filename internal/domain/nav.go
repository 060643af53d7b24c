package domain

// DefaultScrollOffset is added to the scroll position so a section is
// highlighted slightly before its top reaches the viewport edge.
const DefaultScrollOffset = 100

// Extent is the vertical position of a rendered category section.
type Extent struct {
	Category string  `json:"category"`
	Top      float64 `json:"top"`
	Height   float64 `json:"height"`
}

// CategoryAt returns the category whose extent contains scrollY+offset.
// When extents overlap the last one wins. Returns "" when none contains it.
func CategoryAt(extents []Extent, scrollY, offset float64) string {
	pos := scrollY + offset
	current := ""
	for _, ex := range extents {
		if ex.Top <= pos && ex.Top+ex.Height > pos {
			current = ex.Category
		}
	}
	return current
}

// Highlight is the navigation highlight: one category or none.
// Every navigation event replaces it, except a scroll position that falls
// outside every section, which leaves it as it was. The zero value
// highlights nothing.
type Highlight struct {
	active string
}

// Active returns the highlighted category, "" when none.
func (h Highlight) Active() string {
	return h.active
}

// Search applies an input event: the first category with a visible card,
// or none when nothing matches.
func (h *Highlight) Search(res FilterResult) {
	h.active = res.FirstMatch
}

// Click applies a navigation click.
func (h *Highlight) Click(category string) {
	h.active = category
}

// Scroll applies the category under the scroll position, see CategoryAt.
func (h *Highlight) Scroll(category string) {
	if category != "" {
		h.active = category
	}
}

// NavSignals are the inputs a page load is rendered with.
type NavSignals struct {
	// Search is the filter outcome of the query the page was requested with.
	Search FilterResult

	// Clicked is the category followed from the navigation.
	Clicked string
}

// ResolveActive derives the highlight of a freshly loaded page. Nothing is
// highlighted by default. A non-empty query applies as a search, then the
// clicked category, which is the later of the two events.
func ResolveActive(s NavSignals) string {
	var h Highlight
	if s.Search.Active() {
		h.Search(s.Search)
	}
	if s.Clicked != "" {
		h.Click(s.Clicked)
	}
	return h.Active()
}

// NavItem is one entry of the navigation sidebar.
type NavItem struct {
	Category string
	Active   bool
}

// Navigation builds the sidebar items for the directory's categories,
// marking the one equal to active.
func Navigation(d *Directory, active string) []NavItem {
	cats := d.Categories()
	items := make([]NavItem, 0, len(cats))
	for _, c := range cats {
		items = append(items, NavItem{Category: c, Active: active != "" && c == active})
	}
	return items
}
