package library

import (
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mchmarny/shelfd/pkg/config"
	"github.com/mchmarny/shelfd/pkg/i18n"
	"github.com/mchmarny/shelfd/pkg/metric"
	"github.com/mchmarny/shelfd/pkg/render"
	"github.com/mchmarny/shelfd/pkg/sidebar"
)

// Library serves the pages of one library instance.
type Library struct {
	cfg      *config.Config
	pages    *render.Pages
	guest    *sidebar.Guest
	accounts map[string]*sidebar.Account
	log      *slog.Logger

	templates fs.FS
	registry  prometheus.Registerer
}

// Option is a functional option for configuring the Library.
type Option func(*Library)

// WithTemplates overrides where page templates are read from.
func WithTemplates(fsys fs.FS) Option {
	return func(l *Library) { l.templates = fsys }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(lg *slog.Logger) Option {
	return func(l *Library) { l.log = lg }
}

// WithRegistry records page metrics in reg.
func WithRegistry(reg prometheus.Registerer) Option {
	return func(l *Library) { l.registry = reg }
}

// New creates the library for cfg. Templates come from cfg.Templates.Dir
// when set, otherwise from the binary.
func New(cfg *config.Config, opts ...Option) *Library {
	l := &Library{
		cfg:      cfg,
		guest:    cfg.GuestUser(),
		accounts: cfg.Accounts(),
		log:      slog.Default(),
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.templates == nil {
		if dir := strings.TrimSpace(cfg.Templates.Dir); dir != "" {
			l.templates = os.DirFS(dir)
		} else {
			l.templates = render.DefaultFS()
		}
	}

	popts := []render.Option{
		render.WithLogger(l.log),
		render.WithDefaultView(l.guest.View),
	}
	if l.registry != nil {
		popts = append(popts, render.WithMetrics(metric.NewPages(l.registry)))
	}

	funcs := template.FuncMap{"url": URLFor}
	l.pages = render.NewPages(render.NewTemplates(l.templates, funcs),
		cfg.Title, cfg.Upload.Extensions, popts...)

	return l
}

// Router returns a gin engine with the library middleware and routes.
func (l *Library) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), l.logRequests, l.handleErrors, l.identify)
	l.RegisterRoutes(router)
	return router
}

// identify resolves the current user and localizer of the request. With a
// proxy header configured, a known user name in it logs that user in;
// everyone else is the guest.
func (l *Library) identify(c *gin.Context) {
	var u sidebar.User = l.guest

	if header := l.cfg.Auth.ProxyHeader; header != "" {
		if name := strings.TrimSpace(c.GetHeader(header)); name != "" {
			if a, ok := l.accounts[name]; ok {
				u = a
			} else {
				l.log.Warn("unknown user in proxy header",
					"header", header,
					"user", name,
				)
			}
		}
	}

	render.SetUser(c, u)
	render.SetLocalizer(c, i18n.FromRequest(c.Request))
	c.Next()
}

func (l *Library) logRequests(c *gin.Context) {
	start := time.Now()
	l.log.Debug("handling",
		"method", c.Request.Method,
		"url", c.Request.URL.Path,
	)

	c.Next()

	l.log.Info("completed",
		"method", c.Request.Method,
		"url", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start),
	)
}

// handleErrors turns errors attached by handlers into a 500 response.
func (l *Library) handleErrors(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 {
		return
	}

	for _, err := range c.Errors {
		l.log.Error("request failed",
			"url", c.Request.URL.Path,
			"error", err.Err,
		)
	}

	if !c.Writer.Written() {
		c.String(http.StatusInternalServerError, "internal server error")
	}
}
