package library

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mchmarny/shelfd/pkg/config"
	"github.com/mchmarny/shelfd/pkg/logger"
	"github.com/mchmarny/shelfd/pkg/server"
)

// BuildInfo identifies the running binary. Set at build time via -ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Run starts the library server and blocks until the context is canceled or an error occurs.
// Caller options are applied after the configured port, so they win.
func Run(ctx context.Context, cfg *config.Config, info BuildInfo, opt ...server.Option) error {
	log := logger.SetDefault(logger.Options{
		Module:  "shelfd",
		Version: info.Version,
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
	})
	log.Info("starting shelfd",
		"commit", info.Commit,
		"date", info.Date,
		"title", cfg.Title,
		"templates", cfg.Templates.Dir,
		"proxy_login", cfg.Auth.ProxyHeader != "",
	)

	if logger.ParseLogLevel(cfg.Logging.Level) > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	lib := New(cfg, WithLogger(log), WithRegistry(reg))

	opts := []server.Option{
		server.WithPort(cfg.HTTP.Port),
		server.WithErrorLog(logger.NewLogLogger(log, slog.LevelError)),
	}
	opts = append(opts, opt...)
	opts = append(opts,
		server.WithSimpleHealth(),
		server.WithMetrics(reg),
		server.WithHandler("/", lib.Router()),
	)

	return server.New(opts...).Serve(ctx)
}
