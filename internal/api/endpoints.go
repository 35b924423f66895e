package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"triagewizard/internal/triage"
)

// The six AI endpoints share one shape: decode the operation's request,
// resolve the prompt and schema (caller overrides win over the built-ins),
// then run the canonical invocation path with the operation's marker keys
// and decoder.

func (h *handler) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req triage.ClassifyRequest
	if !h.readRequest(w, r, &req) {
		return
	}
	if !requireProvider(w, req.Provider) {
		return
	}
	prompt := req.Prompt
	if prompt == "" {
		if !requireBug(w, req.Bug) {
			return
		}
		prompt = triage.BuildClassifyPrompt(req.Bug)
	}
	h.invoke(w, r, invocation{
		endpoint: "classify",
		provider: req.Provider,
		model:    h.model(req.Model),
		prompt:   prompt,
		schema:   orDefault(req.Schema, triage.ClassifySchema),
		markers:  triage.ClassifyMarkers,
		decode:   func(raw json.RawMessage) any { return triage.DecodeClassify(raw) },
	})
}

func (h *handler) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req triage.SuggestRequest
	if !h.readRequest(w, r, &req) {
		return
	}
	if !requireProvider(w, req.Provider) {
		return
	}
	prompt := req.Prompt
	if prompt == "" {
		if !requireBug(w, req.Bug) {
			return
		}
		prompt = triage.BuildSuggestPrompt(req.Bug, req.CannedResponses)
	}
	h.invoke(w, r, invocation{
		endpoint: "suggest-response",
		provider: req.Provider,
		model:    h.model(req.Model),
		prompt:   prompt,
		schema:   orDefault(req.Schema, triage.SuggestSchema),
		markers:  triage.SuggestMarkers,
		decode:   func(raw json.RawMessage) any { return triage.DecodeSuggest(raw) },
	})
}

func (h *handler) handleCustomize(w http.ResponseWriter, r *http.Request) {
	var req triage.CustomizeRequest
	if !h.readRequest(w, r, &req) {
		return
	}
	if !requireProvider(w, req.Provider) {
		return
	}
	prompt := req.Prompt
	if prompt == "" {
		if !requireBug(w, req.Bug) {
			return
		}
		prompt = triage.BuildCustomizePrompt(req.Bug, req.CannedResponse)
	}
	fallbackID := triage.CannedID(req.CannedResponse)
	h.invoke(w, r, invocation{
		endpoint: "customize",
		provider: req.Provider,
		model:    h.model(req.Model),
		prompt:   prompt,
		schema:   orDefault(req.Schema, triage.CustomizeSchema),
		markers:  triage.CustomizeMarkers,
		decode:   func(raw json.RawMessage) any { return triage.DecodeCustomize(raw, fallbackID) },
	})
}

func (h *handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req triage.GenerateRequest
	if !h.readRequest(w, r, &req) {
		return
	}
	if !requireProvider(w, req.Provider) {
		return
	}
	prompt := req.Prompt
	if prompt == "" {
		if !requireBug(w, req.Bug) {
			return
		}
		prompt = triage.BuildGeneratePrompt(req.Bug, req.Options)
	}
	h.invoke(w, r, invocation{
		endpoint: "generate",
		provider: req.Provider,
		model:    h.model(req.Model),
		prompt:   prompt,
		schema:   orDefault(req.Schema, triage.GenerateSchema),
		markers:  triage.GenerateMarkers,
		decode:   func(raw json.RawMessage) any { return triage.DecodeGenerate(raw) },
	})
}

func (h *handler) handleRefine(w http.ResponseWriter, r *http.Request) {
	var req triage.RefineRequest
	if !h.readRequest(w, r, &req) {
		return
	}
	if !requireProvider(w, req.Provider) {
		return
	}
	prompt := req.Prompt
	if prompt == "" {
		if !requireBug(w, req.Bug) {
			return
		}
		prompt = triage.BuildRefinePrompt(req.Bug, req.CurrentResponse, req.UserInstruction, req.Context)
	}
	h.invoke(w, r, invocation{
		endpoint: "refine",
		provider: req.Provider,
		model:    h.model(req.Model),
		prompt:   prompt,
		schema:   orDefault(req.Schema, triage.RefineSchema),
		markers:  triage.RefineMarkers,
		decode:   func(raw json.RawMessage) any { return triage.DecodeRefine(raw) },
	})
}

func (h *handler) handleTestPage(w http.ResponseWriter, r *http.Request) {
	var req triage.TestPageRequest
	if !h.readRequest(w, r, &req) {
		return
	}
	if !requireProvider(w, req.Provider) {
		return
	}
	prompt := req.Prompt
	if prompt == "" {
		if !requireBug(w, req.Bug) {
			return
		}
		prompt = triage.BuildTestPagePrompt(req.Bug)
	}
	h.invoke(w, r, invocation{
		endpoint: "testpage",
		provider: req.Provider,
		model:    h.model(req.Model),
		prompt:   prompt,
		schema:   orDefault(req.Schema, triage.TestPageSchema),
		markers:  triage.TestPageMarkers,
		decode:   func(raw json.RawMessage) any { return triage.DecodeTestPage(raw) },
	})
}

// readRequest enforces the method, decodes the JSON body into req and
// checks the provider field every request must carry. Failures are the
// caller's, rejected before any process is spawned.
func (h *handler) readRequest(w http.ResponseWriter, r *http.Request, req any) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return false
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading request body failed", err.Error())
		return false
	}
	if err := json.Unmarshal(body, req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON request body", err.Error())
		return false
	}
	return true
}

// requireProvider rejects requests that do not name a provider.
func requireProvider(w http.ResponseWriter, name string) bool {
	if name == "" {
		writeError(w, http.StatusBadRequest, "provider is required", "")
		return false
	}
	return true
}

// requireBug rejects requests that carry neither a pre-built prompt nor a
// bug to build one from.
func requireBug(w http.ResponseWriter, bug json.RawMessage) bool {
	trimmed := bytes.TrimSpace(bug)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		writeError(w, http.StatusBadRequest, "bug is required", "")
		return false
	}
	return true
}
