package logger

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

const (
	// EnvVarLogLevel is the environment variable name for setting the log level.
	EnvVarLogLevel = "LOG_LEVEL"

	// FormatJSON and FormatText select the handler used by New.
	FormatJSON = "json"
	FormatText = "text"
)

// Options configures a structured logger.
type Options struct {
	// Module and Version are attached to every record.
	Module  string
	Version string

	// Level is a level name, see ParseLogLevel.
	Level string

	// Format is FormatJSON (default) or FormatText.
	Format string

	// Output defaults to os.Stderr.
	Output io.Writer
}

// New creates a structured logger. Source locations are included at debug
// level only.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	lev := ParseLogLevel(opts.Level)
	hopts := &slog.HandlerOptions{
		Level:     lev,
		AddSource: lev <= slog.LevelDebug,
	}

	var h slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), FormatText) {
		h = slog.NewTextHandler(out, hopts)
	} else {
		h = slog.NewJSONHandler(out, hopts)
	}

	l := slog.New(h)
	if opts.Module != "" {
		l = l.With("module", opts.Module)
	}
	if opts.Version != "" {
		l = l.With("version", opts.Version)
	}
	return l
}

// SetDefault installs a logger built from opts as the slog default. An empty
// Level is read from LOG_LEVEL.
func SetDefault(opts Options) *slog.Logger {
	if opts.Level == "" {
		opts.Level = os.Getenv(EnvVarLogLevel)
	}
	l := New(opts)
	slog.SetDefault(l)
	return l
}

// NewLogLogger adapts l for APIs that take a standard library log.Logger,
// such as http.Server.ErrorLog.
func NewLogLogger(l *slog.Logger, level slog.Level) *log.Logger {
	return slog.NewLogLogger(l.Handler(), level)
}

// ParseLogLevel converts a string representation of a log level into a slog.Level.
// Unrecognized values map to slog.LevelInfo.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
