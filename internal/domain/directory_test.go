package domain

import (
	"strings"
	"testing"
	"time"
)

func sampleDirectory() *Directory {
	return NewDirectory([]Entry{
		NewEntry("Tools", "A", "http://a", "", "", ""),
		NewEntry("Docs", "B", "http://b", "", "", "desc"),
		NewEntry("Tools", "Grep", "http://grep", "", "", "search text"),
	}, time.Now())
}

func TestGroupsKeepFirstSeenOrder(t *testing.T) {
	groups := sampleDirectory().Groups()

	if len(groups) != 2 {
		t.Fatalf("Groups() = %d groups, want 2", len(groups))
	}
	if groups[0].Name != "Tools" || groups[1].Name != "Docs" {
		t.Errorf("Groups() order = [%s %s], want [Tools Docs]", groups[0].Name, groups[1].Name)
	}
	if len(groups[0].Entries) != 2 {
		t.Errorf("Tools has %d entries, want 2", len(groups[0].Entries))
	}
	if groups[0].Entries[1].Title != "Grep" {
		t.Errorf("Tools entries out of order: %+v", groups[0].Entries)
	}
}

func TestCategoriesDistinct(t *testing.T) {
	cats := sampleDirectory().Categories()
	if strings.Join(cats, ",") != "Tools,Docs" {
		t.Errorf("Categories() = %v, want [Tools Docs]", cats)
	}
}

func TestNilDirectory(t *testing.T) {
	var d *Directory
	if d.Len() != 0 {
		t.Errorf("nil Len() = %d", d.Len())
	}
	if d.Groups() != nil || d.Categories() != nil {
		t.Error("nil directory should have no groups or categories")
	}
	if _, ok := d.Find("x"); ok {
		t.Error("nil Find() should miss")
	}
	if len(d.IDs()) != 0 {
		t.Error("nil IDs() should be empty")
	}
}

func TestFind(t *testing.T) {
	d := sampleDirectory()
	want := d.Entries[1]

	got, ok := d.Find(want.ID)
	if !ok {
		t.Fatal("Find() missed an existing entry")
	}
	if got.Title != "B" {
		t.Errorf("Find() = %q, want B", got.Title)
	}
	if _, ok := d.Find("missing"); ok {
		t.Error("Find() should miss an unknown id")
	}
}

func TestEntryDefaults(t *testing.T) {
	e := NewEntry("Tools", "A", "http://a", "", "", "")

	if e.Icon != PlaceholderIcon {
		t.Errorf("Icon = %q, want placeholder", e.Icon)
	}
	if e.DisplayDescription() != "A" {
		t.Errorf("DisplayDescription() = %q, want title fallback", e.DisplayDescription())
	}
	if len(e.ID) != 16 {
		t.Errorf("ID length = %d, want 16", len(e.ID))
	}
	if e.ID != EntryID("Tools", "A", "http://a") {
		t.Error("ID is not stable")
	}
	if e.ID == EntryID("Docs", "A", "http://a") {
		t.Error("ID should depend on category")
	}
}

func TestEntryClickable(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"http://a", true},
		{"", false},
	}
	for _, tt := range tests {
		e := NewEntry("c", "t", tt.url, "", "", "")
		if got := e.Clickable(); got != tt.want {
			t.Errorf("Clickable(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestIconSource(t *testing.T) {
	tests := []struct {
		name   string
		entry  Entry
		prefix string
	}{
		{
			name:   "inline data uri wins",
			entry:  NewEntry("c", "t", "http://a", "https://a/icon.png", "data:image/png;base64,AAAA", ""),
			prefix: "data:image/png",
		},
		{
			name:   "explicit icon url",
			entry:  NewEntry("c", "t", "http://a", "https://a/icon.png", "", ""),
			prefix: "https://a/icon.png",
		},
		{
			name:   "placeholder goes to favicon service",
			entry:  NewEntry("c", "t", "http://a", "", "", ""),
			prefix: FaviconService,
		},
		{
			name:   "relative icon goes to favicon service",
			entry:  NewEntry("c", "t", "http://a", "icons/a.png", "", ""),
			prefix: FaviconService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.entry.IconSource()
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("IconSource() = %q, want prefix %q", got, tt.prefix)
			}
		})
	}

	fav := NewEntry("c", "t", "http://a", "", "", "").IconSource()
	if !strings.HasSuffix(fav, "url=http%3A%2F%2Fa&size=32") {
		t.Errorf("favicon url = %q", fav)
	}
}
