package render

import (
	"bytes"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mchmarny/shelfd/pkg/metric"
	"github.com/mchmarny/shelfd/pkg/sidebar"
)

const (
	userKey      = "shelfd.user"
	localizerKey = "shelfd.localizer"
)

// SetUser stores the current user on the request context.
func SetUser(c *gin.Context, u sidebar.User) {
	c.Set(userKey, u)
}

// CurrentUser returns the user stored by SetUser, or a guest.
func CurrentUser(c *gin.Context) sidebar.User {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(sidebar.User); ok && u != nil {
			return u
		}
	}
	return &sidebar.Guest{}
}

// SetLocalizer stores the request's localizer on the request context.
func SetLocalizer(c *gin.Context, l sidebar.Localizer) {
	c.Set(localizerKey, l)
}

// LocalizerOf returns the stored localizer, or nil for source strings.
func LocalizerOf(c *gin.Context) sidebar.Localizer {
	if v, ok := c.Get(localizerKey); ok {
		if l, ok := v.(sidebar.Localizer); ok {
			return l
		}
	}
	return nil
}

// Pages renders library pages with the instance branding and sidebar.
type Pages struct {
	templates   *Templates
	title       string
	accept      []string
	defaultView sidebar.Visibility
	metrics     *metric.Pages
	log         *slog.Logger
}

// Option is a functional option for configuring Pages.
type Option func(*Pages)

// WithLogger sets the logger used for render failures.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pages) { p.log = l }
}

// WithMetrics records renders and sidebar builds.
func WithMetrics(m *metric.Pages) Option {
	return func(p *Pages) { p.metrics = m }
}

// WithDefaultView sets the sidebar sections of users without their own.
func WithDefaultView(v sidebar.Visibility) Option {
	return func(p *Pages) { p.defaultView = v }
}

// NewPages returns a page renderer for an instance named title that
// accepts uploads with the given extensions.
func NewPages(t *Templates, title string, accept []string, opts ...Option) *Pages {
	p := &Pages{
		templates:   t,
		title:       title,
		accept:      accept,
		defaultView: sidebar.AllVisible,
		log:         slog.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Render writes template name as the response. The page gets the
// instance title, the sidebar for the current request and the accepted
// upload extensions; keys in data take precedence.
//
// When the template cannot be read for lack of permission, the failure is
// logged and the request is aborted with 403; Render then returns nil.
// Other errors are returned without writing a response.
func (p *Pages) Render(c *gin.Context, name string, o sidebar.Override, data gin.H) error {
	u := CurrentUser(c)
	loc := LocalizerOf(c)
	sb := sidebar.Build(c.Request.Header, u, o, loc)
	p.countSidebar(sb, o)

	vars := gin.H{
		"instance": p.title,
		"sidebar":  sb.Entries,
		"simple":   sb.Simple,
		"accept":   p.accept,
		"user":     u,
		"view":     sidebar.ViewOf(u, p.defaultView),
	}
	for k, v := range data {
		vars[k] = v
	}

	var buf bytes.Buffer
	if err := p.templates.Execute(&buf, name, vars, requestFuncs(loc)); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			p.log.Error("no permission to access template file",
				"template", name,
				"error", err,
			)
			p.countRender(name, http.StatusForbidden)
			c.AbortWithStatus(http.StatusForbidden)
			return nil
		}
		p.countRender(name, http.StatusInternalServerError)
		return err
	}

	p.countRender(name, http.StatusOK)
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
	return nil
}

func requestFuncs(loc sidebar.Localizer) template.FuncMap {
	t := func(s string) string { return s }
	lang := func() string { return "en" }
	if loc != nil {
		t = loc.T
		if l, ok := loc.(interface{ Lang() string }); ok {
			lang = l.Lang
		}
	}
	return template.FuncMap{"t": t, "lang": lang}
}

func (p *Pages) countRender(name string, status int) {
	if p.metrics != nil {
		p.metrics.Renders.Increment(name, strconv.Itoa(status))
	}
}

func (p *Pages) countSidebar(sb sidebar.Sidebar, o sidebar.Override) {
	if p.metrics == nil {
		return
	}
	layout := "full"
	if sb.Simple {
		layout = "simple"
	}
	p.metrics.Sidebars.Increment(layout, o.String())
}
