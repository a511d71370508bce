package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/thenoetrevino/tasktrack/internal/config"
)

// ListenAndServe listens on cfg.Addr and serves until ctx is canceled
func (a *App) ListenAndServe(ctx context.Context, cfg config.ServerConfig) error {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}
	return a.Serve(ctx, ln, cfg)
}

// Serve accepts connections on ln until ctx is canceled, then drains in-flight
// requests for at most cfg.ShutdownTimeout.
func (a *App) Serve(ctx context.Context, ln net.Listener, cfg config.ServerConfig) error {
	server := &http.Server{
		Handler:      a.handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", "addr", ln.Addr().String())
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutdown signal received, draining requests", "timeout", cfg.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	a.logger.Info("http server stopped gracefully")
	return nil
}
