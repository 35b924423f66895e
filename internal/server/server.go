// Package server runs the proxy's HTTP server: API routes layered over the
// static frontend, graceful shutdown, and the optional browser auto-open.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Config captures the settings for serving the proxy.
type Config struct {
	Addr        string
	FrontendDir string
	NoOpen      bool
	API         http.Handler
	Logger      *slog.Logger
}

// Serve starts the HTTP server and blocks until ctx is cancelled or the
// server fails. In-flight requests get a short drain window on shutdown.
func Serve(ctx context.Context, cfg Config) error {
	if ctx == nil {
		return errors.New("server: context is nil")
	}
	if cfg.Addr == "" {
		return errors.New("server: addr is required")
	}
	if cfg.API == nil {
		return errors.New("server: api handler is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: newRootHandler(cfg),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	if !cfg.NoOpen {
		go openAfterStart(URL(cfg.Addr), logger)
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) || err == nil {
			return nil
		}
		return err
	}
}

// newRootHandler composes the route table: API paths first, everything
// else falls through to the static frontend.
func newRootHandler(cfg Config) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/health", cfg.API)
	mux.Handle("/status", cfg.API)
	mux.Handle("/api/", cfg.API)
	mux.Handle("/", noCache(http.FileServer(http.Dir(cfg.FrontendDir))))
	return mux
}

// URL derives the local browse URL for a listen address.
func URL(addr string) string {
	_, port, found := strings.Cut(addr, ":")
	if !found || port == "" {
		return "http://localhost"
	}
	return "http://localhost:" + port
}

// openAfterStart gives the listener a moment to come up, then opens the
// platform browser. Failing to open is a warning, never an error.
func openAfterStart(url string, logger *slog.Logger) {
	time.Sleep(500 * time.Millisecond)
	logger.Info("opening browser", "url", url)
	if err := openBrowser(url); err != nil {
		logger.Warn("failed to open browser", "url", url, "error", err)
	}
}
