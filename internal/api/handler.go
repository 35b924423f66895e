// Package api exposes the proxy's HTTP surface: the AI endpoints, the
// health probe, the operator status page and the invocation history.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"triagewizard/internal/claudecli"
	"triagewizard/internal/config"
	"triagewizard/internal/history"
	"triagewizard/internal/provider"
)

// Config wires dependencies for the HTTP handler.
type Config struct {
	Settings config.Config
	History  *history.Store
	Version  string
	// SelectProvider resolves provider names; nil means provider.Select.
	SelectProvider func(config.Config, string) (provider.Provider, error)
	// AgentVersion probes the agent binary for /health and /status; nil
	// means the configured runner's --version probe.
	AgentVersion func(ctx context.Context) (string, error)
	Logger *slog.Logger
	Now    func() time.Time
}

// NewHandler builds the HTTP handler for the proxy API. Every request is
// handled on its own goroutine with no shared mutable state, so the
// handler needs no locking.
func NewHandler(cfg Config) http.Handler {
	h := &handler{
		settings:       cfg.Settings,
		store:          cfg.History,
		version:        cfg.Version,
		selectProvider: cfg.SelectProvider,
		agentVersion:   cfg.AgentVersion,
		logger:         cfg.Logger,
		nowFn:          cfg.Now,
	}
	if h.version == "" {
		h.version = "dev"
	}
	if h.selectProvider == nil {
		h.selectProvider = provider.Select
	}
	if h.agentVersion == nil {
		runner := claudecli.Runner{Binary: cfg.Settings.Claude.Binary}
		h.agentVersion = runner.Version
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.nowFn == nil {
		h.nowFn = time.Now
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/status", h.handleStatus)
	mux.HandleFunc("/api/ai/classify", h.handleClassify)
	mux.HandleFunc("/api/ai/suggest-response", h.handleSuggest)
	mux.HandleFunc("/api/ai/customize", h.handleCustomize)
	mux.HandleFunc("/api/ai/generate", h.handleGenerate)
	mux.HandleFunc("/api/ai/refine", h.handleRefine)
	mux.HandleFunc("/api/ai/testpage", h.handleTestPage)
	mux.HandleFunc("/api/history", h.handleHistory)
	return mux
}

type handler struct {
	settings       config.Config
	store          *history.Store
	version        string
	selectProvider func(config.Config, string) (provider.Provider, error)
	agentVersion   func(ctx context.Context) (string, error)
	logger         *slog.Logger
	nowFn          func() time.Time
}

// invocation is one resolved call ready to hand to a provider.
type invocation struct {
	endpoint string
	provider string
	model    string
	prompt   string
	schema   string
	markers  []string
	decode   func(json.RawMessage) any
}

// invoke runs the invocation to completion and writes the response. The
// provider call blocks this goroutine until the subprocess exits; the
// request context kills the subprocess if the client goes away.
func (h *handler) invoke(w http.ResponseWriter, r *http.Request, inv invocation) {
	id := uuid.NewString()
	start := h.nowFn()

	selected, err := h.selectProvider(h.settings, inv.provider)
	var raw json.RawMessage
	if err == nil {
		raw, err = selected.Invoke(r.Context(), provider.Request{
			Prompt:  inv.prompt,
			Schema:  inv.schema,
			Model:   inv.model,
			Markers: inv.markers,
		})
	}
	duration := h.nowFn().Sub(start)

	if err != nil {
		status, body := errorResponseFor(err)
		outcome := outcomeFor(err)
		h.record(r.Context(), id, inv, start, outcome, duration, body.Details)
		h.logger.Error("invocation failed",
			"id", id,
			"endpoint", inv.endpoint,
			"provider", inv.provider,
			"model", inv.model,
			"duration_ms", duration.Milliseconds(),
			"outcome", outcome,
			"error", body.Error)
		writeJSON(w, status, body)
		return
	}

	h.record(r.Context(), id, inv, start, "ok", duration, "")
	h.logger.Info("invocation complete",
		"id", id,
		"endpoint", inv.endpoint,
		"provider", inv.provider,
		"model", inv.model,
		"duration_ms", duration.Milliseconds(),
		"outcome", "ok")
	writeJSON(w, http.StatusOK, inv.decode(raw))
}

// record logs the invocation to the history store when one is configured.
// History is observability, never a reason to fail the call.
func (h *handler) record(ctx context.Context, id string, inv invocation, start time.Time, outcome string, duration time.Duration, detail string) {
	if h.store == nil {
		return
	}
	err := h.store.Record(ctx, history.Invocation{
		ID:         id,
		CreatedAt:  start,
		Endpoint:   inv.endpoint,
		Provider:   inv.provider,
		Model:      inv.model,
		Outcome:    outcome,
		DurationMS: duration.Milliseconds(),
		Detail:     detail,
	})
	if err != nil {
		h.logger.Warn("history record failed", "id", id, "error", err)
	}
}

// model applies the configured default when a request does not pin one.
func (h *handler) model(requested string) string {
	if requested != "" {
		return requested
	}
	return h.settings.Claude.Model
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
