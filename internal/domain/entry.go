package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

const (
	// PlaceholderIcon is stored on entries whose source item carries no icon.
	PlaceholderIcon = "default-icon.png"

	// FaviconService resolves a favicon for any site URL.
	FaviconService = "https://t1.gstatic.com/faviconV2?client=SOCIAL&type=FAVICON&fallback_opts=TYPE,SIZE,URL&url="

	// FallbackIcon replaces any icon that fails to load in the browser.
	FallbackIcon = "data:image/svg+xml;base64,PHN2ZyB3aWR0aD0iMzIiIGhlaWdodD0iMzIiIHZpZXdCb3g9IjAgMCAzMiAzMiIgZmlsbD0ibm9uZSIgeG1sbnM9Imh0dHA6Ly93d3cudzMub3JnLzIwMDAvc3ZnIj48cmVjdCB3aWR0aD0iMzIiIGhlaWdodD0iMzIiIHJ4PSI2IiBmaWxsPSIjRTJFOEYwIi8+PHBhdGggZD0iTTE2IDE2QzE2IDE0LjkgMTYuOSAxNCAxOCAxNEMyMC4yMSAxNCAyMiAxNS43OSAyMiAxOEMyMiAyMC4yMSAyMC4yMSAyMiAxOCAyMkMxNS43OSAyMiAxNCAyMC4yMSAxNCAxOEMxNCAxNi45IDE0LjkgMTYgMTYgMTZaIiBmaWxsPSIjOTRBM0IzIi8+PC9zdmc+"
)

// Entry is one link of the directory.
//
// Entries are built by the source mapper on every load and never mutated afterwards.
// A reload discards the whole list and builds a new one.
type Entry struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// ID is a stable short hash of Category, Title and URL.
	// It is used by the /go/{id} redirect and as the usage counter key.
	ID string `json:"id"`

	// ─────────────────────────────
	// Display
	// ─────────────────────────────

	Title string `json:"title"`

	// URL may be empty; such an entry renders without a click action.
	URL string `json:"url"`

	// Icon is the icon URL given by the source, or PlaceholderIcon.
	Icon string `json:"icon"`

	// IconBase64 is an inline data URI given by the source (optional).
	IconBase64 string `json:"icon_base64,omitempty"`

	// Description is optional; see DisplayDescription.
	Description string `json:"description,omitempty"`

	// Category is the name of the group the entry was listed under.
	Category string `json:"category"`
}

// NewEntry builds an entry and derives its ID.
func NewEntry(category, title, rawURL, icon, iconBase64, description string) Entry {
	if icon == "" {
		icon = PlaceholderIcon
	}
	return Entry{
		ID:          EntryID(category, title, rawURL),
		Title:       title,
		URL:         rawURL,
		Icon:        icon,
		IconBase64:  iconBase64,
		Description: description,
		Category:    category,
	}
}

// EntryID returns the first 16 hex chars of sha256(category, title, url).
func EntryID(category, title, rawURL string) string {
	h := sha256.New()
	h.Write([]byte(category))
	h.Write([]byte{0})
	h.Write([]byte(title))
	h.Write([]byte{0})
	h.Write([]byte(rawURL))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// DisplayDescription returns the description, falling back to the title.
func (e Entry) DisplayDescription() string {
	if e.Description != "" {
		return e.Description
	}
	return e.Title
}

// Clickable reports whether the entry has somewhere to navigate to.
func (e Entry) Clickable() bool {
	return e.URL != ""
}

// IconSource returns the image source shown on the card:
// the inline data URI, else an explicit icon URL, else the favicon service.
func (e Entry) IconSource() string {
	if strings.HasPrefix(e.IconBase64, "data:image/") {
		return e.IconBase64
	}
	if e.Icon != "" && e.Icon != PlaceholderIcon && isRemoteURL(e.Icon) {
		return e.Icon
	}
	return FaviconService + url.QueryEscape(e.URL) + "&size=32"
}

func isRemoteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Matches reports whether the lower-cased needle occurs in the entry's
// title or display description, ignoring case. An empty needle matches.
func (e Entry) Matches(needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Title), needle) ||
		strings.Contains(strings.ToLower(e.DisplayDescription()), needle)
}
