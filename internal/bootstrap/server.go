package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpDelivery "github.com/ecoyoung/packform/internal/delivery/http"
	"github.com/ecoyoung/packform/internal/logger"
)

const (
	defaultReadTimeout     = 30 * time.Second
	defaultWriteTimeout    = 120 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

// Server is the HTTP service around an App.
type Server struct {
	server *http.Server
	log    logger.Logger
}

// NewServer wires the handlers, router and http.Server for app.
func (a *App) NewServer() *Server {
	handler := httpDelivery.NewHandler(a.Service, a.Taxonomy, a.Logger, httpDelivery.HandlerConfig{
		MaxUploadBytes: a.Config.Upload.MaxBytes,
		Sheet:          a.Config.Upload.Sheet,
	})

	var metricsHandler http.Handler
	if a.Metrics != nil {
		metricsHandler = a.Metrics.Handler()
	}

	router := httpDelivery.SetupRouter(a.Config, handler, a.Logger, metricsHandler)

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%s", a.Config.Server.Port),
			Handler:      router,
			ReadTimeout:  defaultReadTimeout,
			WriteTimeout: defaultWriteTimeout,
			IdleTimeout:  defaultIdleTimeout,
		},
		log: a.Logger,
	}
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting HTTP server", logger.String("address", s.server.Addr))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("HTTP server stopped gracefully")
	return nil
}

// Serve runs the HTTP service until ctx is cancelled or a shutdown signal arrives.
func (a *App) Serve(ctx context.Context) error {
	a.Logger.Info("Starting packform service",
		logger.String("version", httpDelivery.Version),
		logger.String("environment", a.Config.Server.Environment),
		logger.String("port", a.Config.Server.Port),
		logger.String("cache", a.Config.Cache.Type),
		logger.Bool("metrics", a.Config.Metrics.Enabled),
	)

	return a.NewServer().Run(ctx)
}
