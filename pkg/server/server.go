package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/mchmarny/shelfd/pkg/metric"
)

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = 8083

	// DefaultReadTimeout is the maximum duration for reading the entire request,
	// including the body.
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled.
	DefaultIdleTimeout = 60 * time.Second

	// DefaultShutdownTimeout is the maximum duration to wait for active connections
	// to close during shutdown.
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultMaxHeaderBytes limits request header size.
	DefaultMaxHeaderBytes = 1 << 20 // 1 MB
)

// Server is an HTTP server with graceful shutdown on context cancellation.
type Server interface {
	// Serve starts the HTTP server and blocks until the context is canceled.
	// Returns nil on graceful shutdown.
	Serve(ctx context.Context) error

	// IsRunning returns true while the server is accepting connections.
	IsRunning() bool

	// Addr returns the bound address while running, or the configured one.
	Addr() string
}

type server struct {
	mux             *http.ServeMux
	port            int
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	maxHeaderBytes  int
	errLog          *log.Logger
	tlsConfig       *TLSConfig

	mu      sync.RWMutex // protects running and addr
	running bool
	addr    string
}

// TLSConfig contains the certificate and key file paths for TLS/HTTPS support.
type TLSConfig struct {
	CertFile string
	KeyFile  string
}

// Option is a functional option for configuring the Server.
type Option func(*server)

// WithPort sets the port number for the HTTP server. Zero picks a free port.
func WithPort(port int) Option {
	return func(s *server) { s.port = port }
}

// WithReadTimeout sets the maximum duration for reading the entire request.
func WithReadTimeout(d time.Duration) Option {
	return func(s *server) { s.readTimeout = d }
}

// WithWriteTimeout sets the maximum duration before timing out writes of the response.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *server) { s.writeTimeout = d }
}

// WithIdleTimeout sets the keep-alive idle timeout.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *server) { s.idleTimeout = d }
}

// WithShutdownTimeout sets the maximum duration to wait for graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *server) { s.shutdownTimeout = d }
}

// WithMaxHeaderBytes sets the maximum number of bytes to read from request headers.
func WithMaxHeaderBytes(n int) Option {
	return func(s *server) { s.maxHeaderBytes = n }
}

// WithErrorLog routes net/http internal errors to l.
func WithErrorLog(l *log.Logger) Option {
	return func(s *server) { s.errLog = l }
}

// WithHandler registers an HTTP handler for the specified pattern.
// The library mounts its router at "/".
func WithHandler(pattern string, handler http.Handler) Option {
	return func(s *server) {
		s.mux.Handle(pattern, handler)
	}
}

// WithMetrics serves the registry at /metrics.
func WithMetrics(reg prometheus.Gatherer) Option {
	return func(s *server) {
		s.mux.Handle("/metrics", metric.GetHandlerForRegistry(reg))
	}
}

// WithSimpleHealth adds a /healthz endpoint that always returns 200 OK.
func WithSimpleHealth() Option {
	return func(s *server) {
		s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
	}
}

// WithTLS configures the server to use TLS/HTTPS with the provided certificate and key files.
func WithTLS(cfg TLSConfig) Option {
	return func(s *server) {
		s.tlsConfig = &cfg
	}
}

// New creates a new HTTP server with the provided options.
func New(opts ...Option) Server {
	s := &server{
		port:            DefaultPort,
		readTimeout:     DefaultReadTimeout,
		writeTimeout:    DefaultWriteTimeout,
		idleTimeout:     DefaultIdleTimeout,
		shutdownTimeout: DefaultShutdownTimeout,
		maxHeaderBytes:  DefaultMaxHeaderBytes,
		mux:             http.NewServeMux(),
		errLog:          log.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.addr = fmt.Sprintf(":%d", s.port)

	slog.Debug("server initialized",
		"port", s.port,
		"read_timeout", s.readTimeout,
		"write_timeout", s.writeTimeout)

	return s
}

// IsRunning returns true if the server is currently running and accepting connections.
func (s *server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.running
}

// Addr returns the listener address once bound.
func (s *server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.addr
}

// Serve starts the HTTP server and blocks until the context is canceled or an error occurs.
// One goroutine serves, the other waits for cancellation and shuts the
// server down within the shutdown timeout.
func (s *server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Handler:        s.mux,
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		IdleTimeout:    s.idleTimeout,
		MaxHeaderBytes: s.maxHeaderBytes,
		ErrorLog:       s.errLog,
	}

	listener, err := s.listen()
	if err != nil {
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// Running only after the socket is bound.
		s.mu.Lock()
		s.running = true
		s.addr = listener.Addr().String()
		s.mu.Unlock()

		defer func() {
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
		}()

		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		slog.Info("shutting down server", "grace_period", s.shutdownTimeout)

		shutdownStart := time.Now()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}

		slog.Info("server shutdown complete", "duration", time.Since(shutdownStart))

		return nil
	})

	return g.Wait()
}

func (s *server) listen() (net.Listener, error) {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return nil, fmt.Errorf("failed to create listener: %w", err)
	}

	if s.tlsConfig == nil {
		slog.Info("starting server", "addr", listener.Addr().String())
		return listener, nil
	}

	cert, err := tls.LoadX509KeyPair(s.tlsConfig.CertFile, s.tlsConfig.KeyFile)
	if err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}

	slog.Info("starting TLS server", "addr", listener.Addr().String())

	return tls.NewListener(listener, &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}), nil
}
