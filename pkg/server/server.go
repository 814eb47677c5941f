// Package server provides the HTTP listeners for the tenant edge router.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"mercator-hq/janus/pkg/bindings"
	"mercator-hq/janus/pkg/config"
	"mercator-hq/janus/pkg/proxy"
	"mercator-hq/janus/pkg/proxy/handlers"
	"mercator-hq/janus/pkg/proxy/middleware"
	"mercator-hq/janus/pkg/routing"
	"mercator-hq/janus/pkg/security/auth"
	"mercator-hq/janus/pkg/telemetry/metrics"
	"mercator-hq/janus/pkg/tenant"
)

// Server runs the data-plane listener (tenant routing plus the binding
// control plane) and, when enabled, a separate admin listener for health
// probes and metrics. The admin listener is separate so that ops paths never
// shadow application paths on tenant hostnames.
type Server struct {
	config    *config.Config
	store     bindings.Store
	resolver  *routing.Resolver
	forwarder *proxy.Forwarder
	verifier  *auth.BearerVerifier
	origins   handlers.OriginStatus
	collector *metrics.Collector

	dataServer  *http.Server
	adminServer *http.Server

	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// Deps holds the routing components the server serves.
type Deps struct {
	Store     bindings.Store
	Resolver  *routing.Resolver
	Forwarder *proxy.Forwarder
	Verifier  *auth.BearerVerifier

	// Origins reports origin reachability for the readiness probe. May be
	// nil, in which case the server is always ready.
	Origins handlers.OriginStatus

	// Collector may be nil when metrics are disabled.
	Collector *metrics.Collector
}

// NewServer creates a new edge router server.
func NewServer(cfg *config.Config, deps Deps) *Server {
	return &Server{
		config:       cfg,
		store:        deps.Store,
		resolver:     deps.Resolver,
		forwarder:    deps.Forwarder,
		verifier:     deps.Verifier,
		origins:      deps.Origins,
		collector:    deps.Collector,
		shutdownChan: make(chan struct{}),
	}
}

// Start starts the listeners and blocks until shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	s.dataServer = &http.Server{
		Addr:           s.config.Server.ListenAddress,
		Handler:        s.Handler(),
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		IdleTimeout:    s.config.Server.IdleTimeout,
		MaxHeaderBytes: s.config.Server.MaxHeaderBytes,
	}

	errChan := make(chan error, 2)

	go func() {
		slog.Info("starting edge router",
			"address", s.config.Server.ListenAddress,
			"base_domain", s.config.Routing.BaseDomain,
		)
		if err := s.dataServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	if s.config.Admin.Enabled {
		s.adminServer = &http.Server{
			Addr:         s.config.Admin.ListenAddress,
			Handler:      s.adminHandler(),
			ReadTimeout:  s.config.Server.ReadTimeout,
			WriteTimeout: s.config.Server.WriteTimeout,
		}
		go func() {
			slog.Info("starting admin listener", "address", s.config.Admin.ListenAddress)
			if err := s.adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errChan <- fmt.Errorf("admin server error: %w", err)
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		slog.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down both listeners.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		slog.Info("initiating graceful shutdown", "timeout", s.config.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()

		if s.dataServer != nil {
			if err := s.dataServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}
		if s.adminServer != nil {
			if err := s.adminServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error during admin server shutdown", "error", err)
				if shutdownErr == nil {
					shutdownErr = fmt.Errorf("admin server shutdown error: %w", err)
				}
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("edge router stopped")
	})

	return shutdownErr
}

// Handler returns the data-plane handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	bindingsHandler := handlers.NewBindingsHandler(s.store, s.verifier, s.collector)
	edgeHandler := handlers.NewEdgeHandler(
		s.config.Routing.BaseDomain,
		s.resolver,
		s.forwarder,
		tenant.Extract,
		s.collector,
	)

	// The control-plane prefix matches before the catch-all so binding
	// management never reaches an origin.
	mux.Handle(handlers.ControlPlanePrefix, bindingsHandler)
	mux.Handle("/", edgeHandler)

	var handler http.Handler = mux
	handler = middleware.Logging(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(handler)

	return handler
}

// adminHandler returns the handler for the admin listener.
func (s *Server) adminHandler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/health", handlers.NewHealthHandler())
	mux.Handle("/ready", handlers.NewReadyHandler(s.origins))
	if s.collector != nil {
		mux.Handle("/metrics", s.collector.Handler())
	}

	return mux
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}
