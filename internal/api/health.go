package api

import "net/http"

// healthResponse reports which providers are usable so the frontend can
// auto-configure itself. Keys are camelCase to match the frontend contract.
type healthResponse struct {
	Status              string   `json:"status"`
	Version             string   `json:"version"`
	AvailableProviders  []string `json:"availableProviders"`
	RecommendedProvider string   `json:"recommendedProvider,omitempty"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}

	available := []string{}
	if _, err := h.agentVersion(r.Context()); err == nil {
		available = append(available, "claude")
	}

	resp := healthResponse{
		Status:             "ok",
		Version:            h.version,
		AvailableProviders: available,
	}
	if len(available) > 0 {
		resp.RecommendedProvider = available[0]
	}
	writeJSON(w, http.StatusOK, resp)
}
