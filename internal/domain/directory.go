package domain

import "time"

// Directory is the site model: the ordered entry list of one successful load.
// A Directory is never mutated once published; reloads build a new one.
type Directory struct {
	Entries  []Entry
	LoadedAt time.Time
}

// Group is the entries of one category, in source order.
type Group struct {
	Name    string
	Entries []Entry
}

// NewDirectory wraps entries into a snapshot.
func NewDirectory(entries []Entry, loadedAt time.Time) *Directory {
	return &Directory{Entries: entries, LoadedAt: loadedAt}
}

// Len returns the number of entries. A nil directory is empty.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Entries)
}

// Groups groups entries by category, keeping the order in which
// each category is first seen.
func (d *Directory) Groups() []Group {
	if d == nil {
		return nil
	}
	pos := make(map[string]int)
	var groups []Group
	for _, e := range d.Entries {
		i, ok := pos[e.Category]
		if !ok {
			i = len(groups)
			pos[e.Category] = i
			groups = append(groups, Group{Name: e.Category})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}

// Categories returns the distinct categories in first-seen order.
func (d *Directory) Categories() []string {
	if d == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, e := range d.Entries {
		if !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	return out
}

// Find returns the entry with the given ID.
func (d *Directory) Find(id string) (Entry, bool) {
	if d == nil {
		return Entry{}, false
	}
	for _, e := range d.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// IDs returns the set of entry IDs.
func (d *Directory) IDs() map[string]bool {
	ids := make(map[string]bool, d.Len())
	if d == nil {
		return ids
	}
	for _, e := range d.Entries {
		ids[e.ID] = true
	}
	return ids
}
