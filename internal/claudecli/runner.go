// Package claudecli invokes the Claude Code CLI as a one-shot subprocess
// and recovers a single structured JSON answer from its console output.
package claudecli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// DefaultBinary is the agent executable resolved on PATH when no override
// is configured.
const DefaultBinary = "claude"

// Invocation describes one structured-output request to the agent.
type Invocation struct {
	// Prompt is delivered on the agent's stdin.
	Prompt string
	// Schema is a JSON Schema document the agent must enforce on its answer.
	Schema string
	// Model selects the underlying model.
	Model string
	// Markers are field names whose presence identifies a bare JSON object
	// as a direct answer shape for this call (extraction tier three).
	Markers []string
}

func (inv Invocation) validate() error {
	missing := ""
	switch {
	case strings.TrimSpace(inv.Prompt) == "":
		missing = "prompt"
	case strings.TrimSpace(inv.Schema) == "":
		missing = "schema"
	case strings.TrimSpace(inv.Model) == "":
		missing = "model"
	}
	if missing == "" {
		return nil
	}
	return &InvokeError{
		Kind:    FailureInput,
		Message: missing + " is required",
	}
}

// Runner spawns the agent in non-interactive print mode. The zero value
// runs the default binary from PATH. Runners hold no per-call state and
// are safe for concurrent use.
type Runner struct {
	// Binary overrides the agent executable. Empty means DefaultBinary.
	Binary string
}

func (r Runner) binary() string {
	if r.Binary != "" {
		return r.Binary
	}
	return DefaultBinary
}

// Run invokes the agent once and extracts the structured answer from its
// captured output. It blocks the calling goroutine until the subprocess
// exits; cancelling ctx kills the subprocess. No timeout is imposed here.
func (r Runner) Run(ctx context.Context, inv Invocation) (json.RawMessage, error) {
	if err := inv.validate(); err != nil {
		return nil, err
	}

	binary := r.binary()
	cmd := exec.CommandContext(ctx, binary,
		"-p",
		"--output-format", "json",
		"--model", inv.Model,
		"--json-schema", inv.Schema,
	)

	// All three streams are redirected so the call is fully programmatic
	// and leaves no terminal side effects.
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, &InvokeError{
			Kind:    FailureTransport,
			Message: "creating stdin pipe",
			Detail:  err.Error(),
		}
	}

	if err := cmd.Start(); err != nil {
		stdin.Close()
		return nil, &InvokeError{
			Kind:    FailureSpawn,
			Message: fmt.Sprintf("failed to spawn %s", binary),
			Detail:  fmt.Sprintf("ensure %q is installed, authenticated and on PATH: %v", binary, err),
		}
	}

	_, writeErr := io.WriteString(stdin, inv.Prompt)
	if closeErr := stdin.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		// The prompt never reached the agent; reap the process and report
		// the transport failure rather than whatever exit status follows.
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, &InvokeError{
			Kind:    FailureTransport,
			Message: fmt.Sprintf("failed to write prompt to %s", binary),
			Detail:  writeErr.Error(),
		}
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &InvokeError{
				Kind:    FailureExit,
				Message: fmt.Sprintf("%s exited with status %d", binary, exitErr.ExitCode()),
				Detail:  stderr.String(),
			}
		}
		return nil, &InvokeError{
			Kind:    FailureTransport,
			Message: fmt.Sprintf("failed to collect %s output", binary),
			Detail:  err.Error(),
		}
	}

	return Extract(stdout.Bytes(), inv.Markers)
}

// Version probes the agent binary with --version and returns its trimmed
// output. A failing probe means the agent is unavailable.
func (r Runner) Version(ctx context.Context) (string, error) {
	binary := r.binary()
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, "--version")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return "", fmt.Errorf("%s --version: %s", binary, detail)
	}
	return strings.TrimSpace(stdout.String()), nil
}
