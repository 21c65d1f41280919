package sidebar

import "strings"

// Visibility is a bit set of sidebar sections a viewer has enabled.
type Visibility uint32

// Sidebar section flags. The bit positions are persisted in user settings
// and must not be reordered.
const (
	Recent Visibility = 1 << iota
	Hot
	Random
	Language
	Series
	Category
	Author
	BestRated
	ReadAndUnread
	Publisher
	Rating
	Format
	Archived
	Download
	List

	// AllVisible enables every section.
	AllVisible = (List << 1) - 1
)

var visibilityNames = []struct {
	flag Visibility
	name string
}{
	{Recent, "recent"},
	{Hot, "hot"},
	{Random, "random"},
	{Language, "language"},
	{Series, "series"},
	{Category, "category"},
	{Author, "author"},
	{BestRated, "best_rated"},
	{ReadAndUnread, "read_and_unread"},
	{Publisher, "publisher"},
	{Rating, "rating"},
	{Format, "format"},
	{Archived, "archived"},
	{Download, "download"},
	{List, "list"},
}

// Has reports whether all bits of flag are set in v.
func (v Visibility) Has(flag Visibility) bool {
	return flag != 0 && v&flag == flag
}

// Names returns the section names enabled in v, in bit order.
func (v Visibility) Names() []string {
	var names []string
	for _, n := range visibilityNames {
		if v.Has(n.flag) {
			names = append(names, n.name)
		}
	}
	return names
}

// ParseVisibility turns section names into a bit set. "all" enables every
// section. Unknown names are returned as the second value.
func ParseVisibility(names []string) (Visibility, []string) {
	var (
		v       Visibility
		unknown []string
	)

	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		if name == "all" {
			v |= AllVisible
			continue
		}

		found := false
		for _, n := range visibilityNames {
			if n.name == name {
				v |= n.flag
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, raw)
		}
	}

	return v, unknown
}

// Entry is a single item in the sidebar.
type Entry struct {
	// Icon is the bootstrap-icons glyph class.
	Icon string `json:"glyph"`

	// Label is the localized display text.
	Label string `json:"text"`

	// Route is the name of the navigation target in the routing table.
	Route string `json:"link"`

	// Key identifies the entry for client-side state. Unique per sidebar.
	Key string `json:"id"`

	// Visibility is the section flag that toggles the entry.
	Visibility Visibility `json:"visibility"`

	// Public is true when the entry is shown to the current viewer
	// regardless of its visibility flag being configurable.
	Public bool `json:"public"`

	// Page correlates the entry with the active page for highlighting.
	Page string `json:"page"`

	// ShowText is the localized label of the entry's visibility toggle.
	ShowText string `json:"show_text"`

	// ConfigShow marks entries whose toggle is offered on settings pages.
	ConfigShow bool `json:"config_show"`
}
