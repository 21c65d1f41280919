package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mchmarny/shelfd/pkg/config"
	"github.com/mchmarny/shelfd/pkg/library"
)

var (
	version = "v0.0.0"  // Set at build time via -ldflags "-X main.version=version"
	commit  = "none"    // Set at build time via -ldflags "-X main.commit=commit"
	date    = "unknown" // Set at build time via -ldflags "-X main.date=date"

	configPath = flag.String("config", "shelfd.yaml", "Path to the configuration file (.yaml, .yml or .toml)")
	envFile    = flag.String("env-file", ".env", "Optional file with SHELFD_* environment variables")
	port       = flag.Int("port", 0, "Port to run the server on (overrides the configuration)")
	templates  = flag.String("templates", "", "Directory with page templates (overrides the configuration)")
)

func main() {
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to load env file", "path", *envFile, "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "path", *configPath, "error", err)
		os.Exit(1)
	}

	if *port != 0 {
		cfg.HTTP.Port = *port
	}
	if *templates != "" {
		cfg.Templates.Dir = *templates
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	info := library.BuildInfo{Version: version, Commit: commit, Date: date}
	if err := library.Run(ctx, cfg, info); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
