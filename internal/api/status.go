package api

import (
	"fmt"
	"html"
	"io"
	"net/http"

	"triagewizard/internal/config"
)

// handleStatus serves a small operator page: configuration, agent
// availability and the endpoint list. Refreshing the page re-checks the
// agent.
func (h *handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}

	agentState := "available"
	agentVersion, err := h.agentVersion(r.Context())
	if err != nil {
		agentState = "unavailable"
		agentVersion = err.Error()
	}

	mode := "Claude Code CLI (recommended)"
	if h.settings.Claude.Mode == config.ModeAPI {
		mode = "HTTP API"
	}

	historyState := "disabled"
	if h.store != nil {
		historyState = "enabled"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, fmt.Sprintf(statusPageHTML,
		h.version,
		html.EscapeString(mode),
		html.EscapeString(h.settings.Claude.Model),
		agentState,
		html.EscapeString(agentVersion),
		historyState,
	))
}

const statusPageHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Triage Wizard - Backend Status</title>
    <style>
      body { font-family: system-ui, sans-serif; max-width: 700px; margin: 50px auto; padding: 20px; }
      table { width: 100%%; border-collapse: collapse; margin: 20px 0; }
      td { padding: 8px 4px; border-bottom: 1px solid #eee; }
      td:first-child { font-weight: 500; color: #555; }
      td:last-child { font-family: monospace; }
      code { background: #e9ecef; padding: 2px 6px; border-radius: 3px; }
    </style>
  </head>
  <body>
    <p><a href="/">&larr; Back to App</a></p>
    <h1>Backend Status</h1>
    <table>
      <tr><td>Server</td><td>running, version %s</td></tr>
      <tr><td>Mode</td><td>%s</td></tr>
      <tr><td>Model</td><td>%s</td></tr>
      <tr><td>Claude Code CLI</td><td>%s: %s</td></tr>
      <tr><td>History</td><td>%s</td></tr>
    </table>
    <h2>API Endpoints</h2>
    <table>
      <tr><td>Health</td><td><code>GET /health</code></td></tr>
      <tr><td>Classify</td><td><code>POST /api/ai/classify</code></td></tr>
      <tr><td>Suggest</td><td><code>POST /api/ai/suggest-response</code></td></tr>
      <tr><td>Customize</td><td><code>POST /api/ai/customize</code></td></tr>
      <tr><td>Generate</td><td><code>POST /api/ai/generate</code></td></tr>
      <tr><td>Refine</td><td><code>POST /api/ai/refine</code></td></tr>
      <tr><td>Test page</td><td><code>POST /api/ai/testpage</code></td></tr>
      <tr><td>History</td><td><code>GET /api/history</code></td></tr>
    </table>
    <p><small>Refresh this page to re-check status.</small></p>
  </body>
</html>`
