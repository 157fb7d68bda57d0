package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resumelens/internal/observability"
	"resumelens/internal/pipeline"
)

// Start starts the HTTP server with all configured components
func (s *Server) Start() error {
	om, err := s.initializeObservability()
	if err != nil {
		return err
	}
	defer s.shutdownObservability(om)
	s.Observability = om

	if err := s.initializePipeline(om); err != nil {
		return err
	}

	httpServer, err := s.setupHTTPServer(om)
	if err != nil {
		return err
	}

	if err := s.configureTLS(httpServer); err != nil {
		return err
	}

	s.displayServerInfo()

	return s.startWithGracefulShutdown(httpServer)
}

// initializeObservability sets up observability components
func (s *Server) initializeObservability() (*observability.ObservabilityManager, error) {
	obsConfig := observability.GetObservabilityConfig(s.AppConfig, s.Version)

	om, err := observability.NewObservabilityManager(obsConfig, s.AppConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}

	return om, nil
}

// initializePipeline builds the analysis pipeline and per-operation AI
// services once at startup so handlers share them across requests.
func (s *Server) initializePipeline(om *observability.ObservabilityManager) error {
	p, services, err := pipeline.NewFromConfig(s.AppConfig, s.Logger, om)
	if err != nil {
		return fmt.Errorf("failed to initialize analysis pipeline: %w", err)
	}
	s.Pipeline = p
	s.Services = services
	return nil
}

// shutdownObservability handles observability cleanup
func (s *Server) shutdownObservability(om *observability.ObservabilityManager) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := om.Shutdown(ctx); err != nil {
		s.Logger.LogError(err, "Failed to shutdown observability")
	}
}

// setupHTTPServer creates and configures the HTTP server
func (s *Server) setupHTTPServer(om *observability.ObservabilityManager) (*http.Server, error) {
	mux := s.setupRoutes(om)
	handler := om.HTTPMiddleware()(mux)
	addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  s.ReadTimeout,
		WriteTimeout: s.WriteTimeout,
		IdleTimeout:  s.IdleTimeout,
	}, nil
}

// startWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func (s *Server) startWithGracefulShutdown(server *http.Server) error {
	// Channel to receive OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Channel to receive server errors
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		s.Logger.Info("Starting HTTP server",
			"address", server.Addr,
			"tls_enabled", server.TLSConfig != nil)

		var err error
		if server.TLSConfig != nil {
			// When using TLS with certificate content, we need to use ListenAndServeTLS with empty strings
			// because the certificates are already loaded in the TLS config
			if s.TLSConfig.CertContent != "" || s.TLSConfig.KeyContent != "" {
				err = server.ListenAndServeTLS("", "")
			} else {
				err = server.ListenAndServeTLS(s.TLSConfig.CertFile, s.TLSConfig.KeyFile)
			}
		} else {
			err = server.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	// Wait for either a signal or server error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server failed to start: %w", err)
	case sig := <-quit:
		s.Logger.Info("Received shutdown signal, starting graceful shutdown",
			"signal", sig.String())

		return s.performGracefulShutdown(server)
	}
}

// performGracefulShutdown handles the graceful shutdown process
func (s *Server) performGracefulShutdown(server *http.Server) error {
	// Create a context with timeout for graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Clean up rate limiter if enabled
	s.cleanupRateLimiter()

	// Attempt graceful shutdown of HTTP server
	s.Logger.Info("Shutting down HTTP server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		s.Logger.LogError(err, "Failed to shutdown server gracefully, forcing close")
		return server.Close()
	}

	s.Logger.Info("Server shutdown completed successfully")
	return nil
}

// cleanupRateLimiter cleans up the rate limiter resources
func (s *Server) cleanupRateLimiter() {
	if s.RateLimiter != nil {
		s.RateLimiter.Close()
		s.Logger.Info("Rate limiter cleaned up")
	}
}
