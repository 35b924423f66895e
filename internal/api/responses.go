package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"triagewizard/internal/claudecli"
	"triagewizard/internal/provider"
)

// ErrorResponse is the transport shape of every failure: a short
// machine-readable message plus optional free-text diagnostic detail.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// maxDetailLen bounds the diagnostic detail attached to a failure; raw
// agent output can be arbitrarily large.
const maxDetailLen = 8 << 10

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		data = []byte(`{"error":"encoding response failed"}`)
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, ErrorResponse{Error: message, Details: truncateDetail(details)})
}

// errorResponseFor maps a provider failure to its transport status and
// body. Caller-input failures are the caller's fault (400), stub variants
// are permanently unimplemented (501), everything else is the proxy's
// problem (500).
func errorResponseFor(err error) (int, ErrorResponse) {
	if errors.Is(err, provider.ErrNotImplemented) {
		return http.StatusNotImplemented, ErrorResponse{Error: err.Error()}
	}
	if invokeErr, ok := claudecli.AsInvokeError(err); ok {
		status := http.StatusInternalServerError
		if invokeErr.Kind == claudecli.FailureInput {
			status = http.StatusBadRequest
		}
		return status, ErrorResponse{
			Error:   invokeErr.Message,
			Details: truncateDetail(invokeErr.Detail),
		}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: err.Error()}
}

// outcomeFor is the history/log label of a failure.
func outcomeFor(err error) string {
	if errors.Is(err, provider.ErrNotImplemented) {
		return "not_implemented"
	}
	if invokeErr, ok := claudecli.AsInvokeError(err); ok {
		return string(invokeErr.Kind)
	}
	return "error"
}

func truncateDetail(detail string) string {
	if len(detail) <= maxDetailLen {
		return detail
	}
	return detail[:maxDetailLen] + "... [truncated]"
}
