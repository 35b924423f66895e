package provider

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"triagewizard/internal/claudecli"
	"triagewizard/internal/config"
)

func cliConfig() config.Config {
	var cfg config.Config
	cfg.Claude.Mode = config.ModeCLI
	return cfg
}

// TestSelectClaudeCLI verifies the CLI variant resolves to a real provider
// carrying the configured binary.
func TestSelectClaudeCLI(t *testing.T) {
	cfg := cliConfig()
	cfg.Claude.Binary = "/opt/bin/claude"

	selected, err := Select(cfg, "claude")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	cli, ok := selected.(ClaudeCLI)
	if !ok {
		t.Fatalf("expected ClaudeCLI, got %T", selected)
	}
	if cli.Runner.Binary != "/opt/bin/claude" {
		t.Fatalf("binary not threaded through: %q", cli.Runner.Binary)
	}
}

// TestSelectClaudeAPIMode verifies the api mode requires a key and then
// resolves to a stub.
func TestSelectClaudeAPIMode(t *testing.T) {
	var cfg config.Config
	cfg.Claude.Mode = config.ModeAPI

	_, err := Select(cfg, "claude")
	invokeErr, ok := claudecli.AsInvokeError(err)
	if !ok || invokeErr.Kind != claudecli.FailureInput {
		t.Fatalf("expected input failure, got %v", err)
	}
	if !strings.Contains(invokeErr.Message, "ANTHROPIC_API_KEY") {
		t.Fatalf("message should name the missing key, got %q", invokeErr.Message)
	}

	cfg.Keys.Anthropic = "sk-test"
	selected, err := Select(cfg, "claude")
	if err != nil {
		t.Fatalf("select with key: %v", err)
	}
	_, err = selected.Invoke(context.Background(), Request{})
	if !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("expected not-implemented, got %v", err)
	}
}

// TestSelectStubVariants verifies gemini and openai gate on their keys and
// reject invocations permanently.
func TestSelectStubVariants(t *testing.T) {
	cases := []struct {
		name   string
		setKey func(cfg *config.Config)
	}{
		{"gemini", func(cfg *config.Config) { cfg.Keys.Gemini = "key" }},
		{"openai", func(cfg *config.Config) { cfg.Keys.OpenAI = "key" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := cliConfig()

			_, err := Select(cfg, tc.name)
			invokeErr, ok := claudecli.AsInvokeError(err)
			if !ok || invokeErr.Kind != claudecli.FailureInput {
				t.Fatalf("expected input failure without key, got %v", err)
			}

			tc.setKey(&cfg)
			selected, err := Select(cfg, tc.name)
			if err != nil {
				t.Fatalf("select with key: %v", err)
			}
			_, err = selected.Invoke(context.Background(), Request{})
			if !errors.Is(err, ErrNotImplemented) {
				t.Fatalf("expected not-implemented, got %v", err)
			}
			var stubErr *NotImplementedError
			if !errors.As(err, &stubErr) || !strings.Contains(stubErr.Message, "not yet implemented") {
				t.Fatalf("unexpected stub message: %v", err)
			}
		})
	}
}

// TestSelectUnknownProvider verifies the provider set is closed.
func TestSelectUnknownProvider(t *testing.T) {
	_, err := Select(cliConfig(), "llamafile")
	invokeErr, ok := claudecli.AsInvokeError(err)
	if !ok || invokeErr.Kind != claudecli.FailureInput {
		t.Fatalf("expected input failure, got %v", err)
	}
	if !strings.Contains(invokeErr.Message, "llamafile") {
		t.Fatalf("message should name the provider, got %q", invokeErr.Message)
	}
}

// TestClaudeCLIInvoke verifies the request maps onto a runner invocation.
func TestClaudeCLIInvoke(t *testing.T) {
	// An unset model is rejected by the runner before spawning, which
	// proves the request fields reach validation untouched.
	provider := ClaudeCLI{}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := provider.Invoke(ctx, Request{Prompt: "p", Schema: "{}"})
	invokeErr, ok := claudecli.AsInvokeError(err)
	if !ok || invokeErr.Kind != claudecli.FailureInput {
		t.Fatalf("expected input failure for missing model, got %v", err)
	}
}
