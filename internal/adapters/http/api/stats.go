package api

import (
	"context"
	"net/http"
)

// StatsProvider reports process statistics for the /stats endpoint.
type StatsProvider interface {
	GetStats(ctx context.Context) (map[string]any, error)
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if h.statsProvider == nil {
		writeJSON(w, http.StatusOK, map[string]any{})
		return
	}
	stats, err := h.statsProvider.GetStats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Code: "stats_unavailable", Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
