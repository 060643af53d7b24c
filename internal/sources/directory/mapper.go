package directory

import (
	"strings"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

// Mapper flattens a Document into domain entries.
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapEntries assigns each item its category and fills optional fields.
// Items are kept even without a url; they render without a click action.
func (m *Mapper) MapEntries(doc Document) []domain.Entry {
	entries := make([]domain.Entry, 0, countItems(doc))

	for _, group := range doc {
		for _, item := range group.Items {
			entries = append(entries, domain.NewEntry(
				group.Name,
				item.Title,
				strings.TrimSpace(item.URL),
				strings.TrimSpace(item.Icon),
				strings.TrimSpace(item.IconBase64),
				item.Description,
			))
		}
	}

	return entries
}

func countItems(doc Document) int {
	n := 0
	for _, g := range doc {
		n += len(g.Items)
	}
	return n
}
