package domain

import "strings"

// CardView is one card after filtering.
type CardView struct {
	Entry   Entry
	Visible bool
}

// SectionView is one category section after filtering.
type SectionView struct {
	Name    string
	Visible bool
	Cards   []CardView
}

// FilterResult is the outcome of applying a search query to a directory.
type FilterResult struct {
	Query      string // lower-cased
	Sections   []SectionView
	FirstMatch string // first category with a visible card, "" when none
	Visible    int    // number of visible cards
}

// Active reports whether the query narrows the directory at all.
func (r FilterResult) Active() bool {
	return r.Query != ""
}

// NormalizeQuery lower-cases a raw query. Whitespace is significant.
func NormalizeQuery(raw string) string {
	return strings.ToLower(raw)
}

// Filter applies a case-insensitive substring query against each entry's
// title and display description. Sections with no visible card are hidden.
// An empty query leaves everything visible.
func Filter(d *Directory, raw string) FilterResult {
	q := NormalizeQuery(raw)
	res := FilterResult{Query: q}

	for _, g := range d.Groups() {
		sec := SectionView{Name: g.Name, Cards: make([]CardView, 0, len(g.Entries))}
		for _, e := range g.Entries {
			visible := e.Matches(q)
			if visible {
				sec.Visible = true
				res.Visible++
				if res.FirstMatch == "" {
					res.FirstMatch = g.Name
				}
			}
			sec.Cards = append(sec.Cards, CardView{Entry: e, Visible: visible})
		}
		res.Sections = append(res.Sections, sec)
	}

	return res
}
