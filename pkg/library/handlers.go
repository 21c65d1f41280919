package library

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mchmarny/shelfd/pkg/render"
	"github.com/mchmarny/shelfd/pkg/sidebar"
)

const (
	listTemplate   = "list.html"
	configTemplate = "config.html"
)

// allowed checks the page's access rules and aborts the request when the
// current user may not see it.
func allowed(c *gin.Context, u sidebar.User, p page) bool {
	switch {
	case p.admin && !u.RoleAdmin():
		c.AbortWithStatus(http.StatusForbidden)
		return false
	case p.member && u.IsAnonymous():
		c.AbortWithStatus(http.StatusUnauthorized)
		return false
	}
	return true
}

func (l *Library) handlePage(p page) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !allowed(c, render.CurrentUser(c), p) {
			return
		}

		data := gin.H{
			"title": translate(c, p.title),
			"page":  p.id,
		}
		if sort := c.Param("sort_param"); sort != "" {
			data["sort"] = sort
		}

		if err := l.pages.Render(c, listTemplate, sidebar.NoOverride(), data); err != nil {
			_ = c.Error(err)
		}
	}
}

// handleViewConfig shows the instance-wide sidebar defaults.
func (l *Library) handleViewConfig(c *gin.Context) {
	if !allowed(c, render.CurrentUser(c), page{admin: true}) {
		return
	}

	data := gin.H{
		"title":    translate(c, "Configuration"),
		"page":     "config",
		"defaults": l.guest.View,
	}

	if err := l.pages.Render(c, configTemplate, sidebar.ConfigMode(), data); err != nil {
		_ = c.Error(err)
	}
}

// handleProfile shows the current user's sidebar settings.
func (l *Library) handleProfile(c *gin.Context) {
	u := render.CurrentUser(c)
	if !allowed(c, u, page{member: true}) {
		return
	}

	data := gin.H{
		"title": translate(c, "Profile"),
		"page":  "me",
	}

	if err := l.pages.Render(c, configTemplate, sidebar.UserOverride(u), data); err != nil {
		_ = c.Error(err)
	}
}

// SidebarResponse is the JSON form of the current request's sidebar.
type SidebarResponse struct {
	Simple  bool           `json:"simple"`
	View    []string       `json:"view"`
	Entries []SidebarEntry `json:"entries"`
}

// SidebarEntry is an entry with its resolved link.
type SidebarEntry struct {
	sidebar.Entry
	URL string `json:"url"`
}

// handleSidebar returns the sidebar as JSON for client-side navigation.
func (l *Library) handleSidebar(c *gin.Context) {
	u := render.CurrentUser(c)
	sb := sidebar.Build(c.Request.Header, u, sidebar.NoOverride(), localizer(c))
	view := sidebar.ViewOf(u, l.guest.View)

	resp := SidebarResponse{
		Simple:  sb.Simple,
		View:    view.Names(),
		Entries: make([]SidebarEntry, 0, len(sb.Entries)),
	}
	for _, e := range sb.Shown(view) {
		resp.Entries = append(resp.Entries, SidebarEntry{Entry: e, URL: URLFor(e)})
	}

	c.JSON(http.StatusOK, resp)
}

func localizer(c *gin.Context) sidebar.Localizer {
	return render.LocalizerOf(c)
}

func translate(c *gin.Context, msg string) string {
	if loc := localizer(c); loc != nil {
		return loc.T(msg)
	}
	return msg
}
