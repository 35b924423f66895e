package claudecli

import "errors"

// FailureKind is the machine-readable category of a terminal invocation
// failure. Every failure is terminal: the agent is assumed deterministic
// enough that retrying the same prompt would reproduce the same failure.
type FailureKind string

const (
	// FailureInput marks a malformed call rejected before spawning.
	FailureInput FailureKind = "input"
	// FailureSpawn marks an agent binary that could not be started.
	FailureSpawn FailureKind = "spawn"
	// FailureTransport marks an I/O failure on the subprocess pipes.
	FailureTransport FailureKind = "transport"
	// FailureExit marks a subprocess that ran but exited non-zero.
	FailureExit FailureKind = "exit"
	// FailureExtract marks output with no recognizable answer shape.
	FailureExtract FailureKind = "extract"
)

// InvokeError describes why one agent invocation failed. Message is a short
// human-readable summary; Detail carries free-text diagnostics such as the
// captured stderr or the raw output that defeated extraction.
type InvokeError struct {
	Kind    FailureKind
	Message string
	Detail  string
}

func (e *InvokeError) Error() string {
	if e.Detail == "" {
		return e.Message
	}
	return e.Message + ": " + e.Detail
}

// AsInvokeError unwraps err as an *InvokeError when possible.
func AsInvokeError(err error) (*InvokeError, bool) {
	var invokeErr *InvokeError
	if errors.As(err, &invokeErr) {
		return invokeErr, true
	}
	return nil, false
}
