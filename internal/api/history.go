package api

import (
	"net/http"
	"strconv"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// handleHistory serves the newest invocation-log rows.
func (h *handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}
	if h.store == nil {
		writeError(w, http.StatusNotFound, "history is not enabled", "set history.path or HISTORY_DB to enable it")
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit", "")
			return
		}
		limit = min(parsed, maxHistoryLimit)
	}

	rows, err := h.store.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "reading history failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"invocations": rows})
}
