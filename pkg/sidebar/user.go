package sidebar

// AllLanguages is the language filter value that disables filtering.
const AllLanguages = "all"

// User is the viewer the sidebar is built for.
type User interface {
	// RoleAdmin reports whether the user administers the library.
	RoleAdmin() bool

	// RoleAnonymous reports whether the account carries the guest role.
	RoleAnonymous() bool

	// IsAnonymous reports whether the session is not logged in.
	IsAnonymous() bool

	// FilterLanguage returns the language the user's listings are
	// restricted to, or AllLanguages.
	FilterLanguage() string
}

// Viewer is implemented by users that carry their own sidebar settings.
type Viewer interface {
	SidebarView() Visibility
}

// ViewOf returns the sidebar sections enabled for u. Users that do not
// implement Viewer, or that have no sections enabled, get fallback.
func ViewOf(u User, fallback Visibility) Visibility {
	if v, ok := u.(Viewer); ok {
		if view := v.SidebarView(); view != 0 {
			return view
		}
	}
	return fallback
}

// Account is a logged-in user.
type Account struct {
	Name     string     `json:"name"`
	Admin    bool       `json:"admin"`
	Language string     `json:"language,omitempty"`
	View     Visibility `json:"view,omitempty"`
}

func (a *Account) RoleAdmin() bool     { return a.Admin }
func (a *Account) RoleAnonymous() bool { return false }
func (a *Account) IsAnonymous() bool   { return false }

func (a *Account) FilterLanguage() string {
	if a.Language == "" {
		return AllLanguages
	}
	return a.Language
}

func (a *Account) SidebarView() Visibility { return a.View }

// Guest is the anonymous visitor.
type Guest struct {
	Language string     `json:"language,omitempty"`
	View     Visibility `json:"view,omitempty"`
}

func (g *Guest) RoleAdmin() bool     { return false }
func (g *Guest) RoleAnonymous() bool { return true }
func (g *Guest) IsAnonymous() bool   { return true }

func (g *Guest) FilterLanguage() string {
	if g.Language == "" {
		return AllLanguages
	}
	return g.Language
}

func (g *Guest) SidebarView() Visibility { return g.View }
