package testutil

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"triagewizard/internal/api"
	"triagewizard/internal/config"
	"triagewizard/internal/history"
	"triagewizard/internal/provider"
)

// ServerConfig wires dependencies for StartServer.
type ServerConfig struct {
	Settings       config.Config
	History        *history.Store
	SelectProvider func(config.Config, string) (provider.Provider, error)
	AgentVersion   func(ctx context.Context) (string, error)
	Now            func() time.Time
}

// ServerInstance represents a running HTTP test server.
type ServerInstance struct {
	BaseURL string
	Close   func()
}

// StartServer launches an in-memory HTTP server for the proxy API.
func StartServer(t *testing.T, cfg ServerConfig) *ServerInstance {
	t.Helper()
	handler := api.NewHandler(api.Config{
		Settings:       cfg.Settings,
		History:        cfg.History,
		SelectProvider: cfg.SelectProvider,
		AgentVersion:   cfg.AgentVersion,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:            cfg.Now,
	})
	server := httptest.NewServer(handler)
	return &ServerInstance{
		BaseURL: server.URL,
		Close:   server.Close,
	}
}
