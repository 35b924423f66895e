// Package provider resolves the closed set of AI backends the proxy knows
// about. Exactly one variant — the local Claude Code CLI — carries real
// behavior; the rest are fixed rejection outcomes, not extension points.
package provider

import (
	"context"
	"encoding/json"
	"errors"

	"triagewizard/internal/claudecli"
	"triagewizard/internal/config"
)

// ErrNotImplemented marks the provider variants that exist only as stubs.
var ErrNotImplemented = errors.New("not implemented")

// Request is one structured-output invocation handed to a provider.
type Request struct {
	Prompt  string
	Schema  string
	Model   string
	Markers []string
}

// Provider produces one structured JSON answer per request. Implementations
// hold no per-call state and are safe for concurrent use.
type Provider interface {
	Invoke(ctx context.Context, req Request) (json.RawMessage, error)
}

// Select resolves a request's provider name against the configured closed
// set. Missing credentials for a stubbed variant are a caller-input
// failure, rejected before anything is spawned.
func Select(cfg config.Config, name string) (Provider, error) {
	switch name {
	case "claude":
		if cfg.Claude.Mode == config.ModeCLI {
			return ClaudeCLI{Runner: claudecli.Runner{Binary: cfg.Claude.Binary}}, nil
		}
		if cfg.Keys.Anthropic == "" {
			return nil, inputError("ANTHROPIC_API_KEY not configured")
		}
		return stub{message: "Claude HTTP API mode not yet implemented - use CLI mode"}, nil
	case "gemini":
		if cfg.Keys.Gemini == "" {
			return nil, inputError("GEMINI_API_KEY not configured")
		}
		return stub{message: "Gemini backend proxy not yet implemented - use browser mode"}, nil
	case "openai":
		if cfg.Keys.OpenAI == "" {
			return nil, inputError("OPENAI_API_KEY not configured")
		}
		return stub{message: "OpenAI backend proxy not yet implemented"}, nil
	default:
		return nil, inputError("unknown provider: " + name)
	}
}

// ClaudeCLI runs requests through the local Claude Code CLI subprocess.
type ClaudeCLI struct {
	Runner claudecli.Runner
}

// Invoke spawns one agent process for the request and extracts its answer.
func (p ClaudeCLI) Invoke(ctx context.Context, req Request) (json.RawMessage, error) {
	return p.Runner.Run(ctx, claudecli.Invocation{
		Prompt:  req.Prompt,
		Schema:  req.Schema,
		Model:   req.Model,
		Markers: req.Markers,
	})
}

// stub is a declared provider variant with no implementation. Its rejection
// message is permanent, not a placeholder for pending work.
type stub struct {
	message string
}

func (s stub) Invoke(context.Context, Request) (json.RawMessage, error) {
	return nil, &NotImplementedError{Message: s.message}
}

// NotImplementedError is the fixed rejection outcome of a stub variant.
type NotImplementedError struct {
	Message string
}

func (e *NotImplementedError) Error() string { return e.Message }

// Unwrap lets callers match with errors.Is(err, ErrNotImplemented).
func (e *NotImplementedError) Unwrap() error { return ErrNotImplemented }

func inputError(message string) error {
	return &claudecli.InvokeError{Kind: claudecli.FailureInput, Message: message}
}
