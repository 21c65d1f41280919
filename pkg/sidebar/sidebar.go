package sidebar

import (
	"net/http"
	"strings"
)

// Route names of the sidebar destinations.
const (
	RouteIndex         = "web.index"
	RouteBooksList     = "web.books_list"
	RouteDownloadList  = "web.download_list"
	RouteCategoryList  = "web.category_list"
	RouteSeriesList    = "web.series_list"
	RouteAuthorList    = "web.author_list"
	RoutePublisherList = "web.publisher_list"
	RouteLanguages     = "web.language_overview"
	RouteRatingsList   = "web.ratings_list"
	RouteFormatsList   = "web.formats_list"
	RouteBooksTable    = "web.books_table"
)

// simpleAgents are user agent fragments of e-reader browsers. Those get the
// reduced layout without the books table.
var simpleAgents = []string{"kindle", "tolino", "kobo", "bookeen"}

// Localizer translates source strings for display.
type Localizer interface {
	T(msg string) string
}

// Sidebar represents the navigation built for one request.
type Sidebar struct {
	// Entries is the display order.
	Entries []Entry `json:"entries"`

	// Simple is true for e-reader browsers.
	Simple bool `json:"simple"`
}

// Lookup returns the entry with the given key.
func (s Sidebar) Lookup(key string) (Entry, bool) {
	for _, e := range s.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// Shown returns the entries a viewer with the given sections enabled gets
// to see: public entries whose section is enabled.
func (s Sidebar) Shown(view Visibility) []Entry {
	shown := make([]Entry, 0, len(s.Entries))
	for _, e := range s.Entries {
		if e.Public && view.Has(e.Visibility) {
			shown = append(shown, e)
		}
	}
	return shown
}

// IsSimpleAgent reports whether the user agent belongs to an e-reader.
func IsSimpleAgent(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	for _, a := range simpleAgents {
		if strings.Contains(ua, a) {
			return true
		}
	}
	return false
}

// Build returns the sidebar for the request headers and user. The override
// decides whether configurable toggles are offered. A nil Localizer leaves
// labels untranslated.
func Build(headers http.Header, u User, o Override, loc Localizer) Sidebar {
	t := translator(loc)
	simple := IsSimpleAgent(headers.Get("User-Agent"))
	conf := o.Configurable()
	member := !u.IsAnonymous()

	downloads := RouteBooksList
	if u.RoleAdmin() {
		downloads = RouteDownloadList
	}

	entries := []Entry{
		{
			Icon:       "bi-book",
			Label:      t("Books"),
			Route:      RouteIndex,
			Key:        "new",
			Visibility: Recent,
			Public:     true,
			Page:       "root",
			ShowText:   t("Show recent books"),
			ConfigShow: false,
		},
		{
			Icon:       "bi-fire",
			Label:      t("Hot Books"),
			Route:      RouteBooksList,
			Key:        "hot",
			Visibility: Hot,
			Public:     true,
			Page:       "hot",
			ShowText:   t("Show Hot Books"),
			ConfigShow: true,
		},
		{
			Icon:       "bi-download",
			Label:      t("Downloaded Books"),
			Route:      downloads,
			Key:        "download",
			Visibility: Download,
			Public:     member,
			Page:       "download",
			ShowText:   t("Show Downloaded Books"),
			ConfigShow: conf,
		},
		{
			Icon:       "bi-star-fill",
			Label:      t("Top Rated Books"),
			Route:      RouteBooksList,
			Key:        "rated",
			Visibility: BestRated,
			Public:     true,
			Page:       "rated",
			ShowText:   t("Show Top Rated Books"),
			ConfigShow: true,
		},
		{
			Icon:       "bi-eye-fill",
			Label:      t("Read Books"),
			Route:      RouteBooksList,
			Key:        "read",
			Visibility: ReadAndUnread,
			Public:     member,
			Page:       "read",
			ShowText:   t("Show read and unread"),
			ConfigShow: conf,
		},
		{
			Icon:       "bi-eye-slash-fill",
			Label:      t("Unread Books"),
			Route:      RouteBooksList,
			Key:        "unread",
			Visibility: ReadAndUnread,
			Public:     member,
			Page:       "unread",
			ShowText:   t("Show unread"),
			ConfigShow: false,
		},
		{
			Icon:       "bi-shuffle",
			Label:      t("Discover"),
			Route:      RouteBooksList,
			Key:        "rand",
			Visibility: Random,
			Public:     true,
			Page:       "discover",
			ShowText:   t("Show Random Books"),
			ConfigShow: true,
		},
		{
			Icon:       "bi-inbox-fill",
			Label:      t("Categories"),
			Route:      RouteCategoryList,
			Key:        "cat",
			Visibility: Category,
			Public:     true,
			Page:       "category",
			ShowText:   t("Show category selection"),
			ConfigShow: true,
		},
		{
			Icon:       "bi-bookmark-fill",
			Label:      t("Series"),
			Route:      RouteSeriesList,
			Key:        "serie",
			Visibility: Series,
			Public:     true,
			Page:       "series",
			ShowText:   t("Show series selection"),
			ConfigShow: true,
		},
		{
			Icon:       "bi-person-fill",
			Label:      t("Authors"),
			Route:      RouteAuthorList,
			Key:        "author",
			Visibility: Author,
			Public:     true,
			Page:       "author",
			ShowText:   t("Show author selection"),
			ConfigShow: true,
		},
		{
			Icon:       "bi-newspaper",
			Label:      t("Publishers"),
			Route:      RoutePublisherList,
			Key:        "publisher",
			Visibility: Publisher,
			Public:     true,
			Page:       "publisher",
			ShowText:   t("Show publisher selection"),
			ConfigShow: true,
		},
		{
			Icon:       "bi-translate",
			Label:      t("Languages"),
			Route:      RouteLanguages,
			Key:        "lang",
			Visibility: Language,
			Public:     u.FilterLanguage() == AllLanguages,
			Page:       "language",
			ShowText:   t("Show language selection"),
			ConfigShow: true,
		},
		{
			Icon:       "bi-star",
			Label:      t("Ratings"),
			Route:      RouteRatingsList,
			Key:        "rate",
			Visibility: Rating,
			Public:     true,
			Page:       "rating",
			ShowText:   t("Show ratings selection"),
			ConfigShow: true,
		},
		{
			Icon:       "bi-file-earmark-fill",
			Label:      t("File formats"),
			Route:      RouteFormatsList,
			Key:        "format",
			Visibility: Format,
			Public:     true,
			Page:       "format",
			ShowText:   t("Show file formats selection"),
			ConfigShow: true,
		},
		{
			Icon:       "bi-archive-fill",
			Label:      t("Archived Books"),
			Route:      RouteBooksList,
			Key:        "archived",
			Visibility: Archived,
			Public:     member,
			Page:       "archived",
			ShowText:   t("Show archived books"),
			ConfigShow: conf,
		},
	}

	// The books table is too heavy for e-reader browsers.
	if !simple {
		entries = append(entries, Entry{
			Icon:       "bi-list-ul",
			Label:      t("Books List"),
			Route:      RouteBooksTable,
			Key:        "list",
			Visibility: List,
			Public:     member,
			Page:       "list",
			ShowText:   t("Show Books List"),
			ConfigShow: conf,
		})
	}

	return Sidebar{Entries: entries, Simple: simple}
}

func translator(loc Localizer) func(string) string {
	if loc == nil {
		return func(s string) string { return s }
	}
	return loc.T
}
