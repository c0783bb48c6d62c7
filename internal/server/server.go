// Package server runs the process's single HTTP listener: configured
// timeouts, optional TLS, and graceful drain wired to context cancellation.
package server

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"log/slog"
	"net/http"
)

// ErrMissingAddress is returned when no listen address is configured.
var ErrMissingAddress = errors.New("server address is required")

// Server holds the validated listener configuration. The underlying
// http.Server is created inside Run, so a Server is inert until then.
type Server struct {
	cfg Config
	tls *tls.Config
	log *slog.Logger
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets the logger for lifecycle events. Defaults to discard.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithTLS sets an explicit TLS configuration, overriding any certificate
// files named in the config.
func WithTLS(cfg *tls.Config) Option {
	return func(s *Server) {
		s.tls = cfg
	}
}

// New validates the configuration and prepares a server. TLS is enabled
// when both a certificate and a key file are configured.
func New(cfg Config, opts ...Option) (*Server, error) {
	if cfg.Addr == "" {
		return nil, ErrMissingAddress
	}

	s := &Server{
		cfg: cfg,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.tls == nil && cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		tlsCfg, err := loadTLSFromFiles(cfg.TLSCertFile, cfg.TLSKeyFile)
		if err != nil {
			return nil, err
		}
		s.tls = tlsCfg
	}

	return s, nil
}

// Run returns an errgroup-compatible function that serves the handler until
// the context is canceled, then drains in-flight requests within the
// configured shutdown timeout. A clean shutdown returns nil.
func (s *Server) Run(ctx context.Context, handler http.Handler) func() error {
	return func() error {
		srv := &http.Server{
			Addr:           s.cfg.Addr,
			Handler:        handler,
			ReadTimeout:    s.cfg.ReadTimeout,
			WriteTimeout:   s.cfg.WriteTimeout,
			IdleTimeout:    s.cfg.IdleTimeout,
			MaxHeaderBytes: s.cfg.MaxHeaderBytes,
			TLSConfig:      s.tls,
		}

		serveErr := make(chan error, 1)
		go func() {
			s.log.InfoContext(ctx, "server listening", "addr", s.cfg.Addr, "tls", s.tls != nil)
			if s.tls != nil {
				serveErr <- srv.ListenAndServeTLS("", "")
			} else {
				serveErr <- srv.ListenAndServe()
			}
		}()

		select {
		case err := <-serveErr:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		s.log.Info("server draining", "timeout", s.cfg.shutdownTimeout())

		drainCtx, cancel := context.WithTimeout(context.Background(), s.cfg.shutdownTimeout())
		defer cancel()

		if err := srv.Shutdown(drainCtx); err != nil {
			s.log.Error("server drain failed", "error", err)
			return err
		}
		<-serveErr

		s.log.Info("server stopped")
		return nil
	}
}
