package directory

// Document is the raw bookmark document: categories in source order.
// The source shape is a mapping, but key order is significant, so it is
// decoded into an ordered slice instead of a Go map.
type Document []Group

// Group is one category of the document.
type Group struct {
	Name  string
	Items []Item
}

// Item is one bookmark as written in the source. Only title and url are
// expected; everything else is optional.
type Item struct {
	Title       string `json:"title" yaml:"title"`
	URL         string `json:"url" yaml:"url"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty"`
	IconBase64  string `json:"icon_base64,omitempty" yaml:"icon_base64,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}
