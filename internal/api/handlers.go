package api

import (
	"encoding/json"
	"net/http"

	"github.com/mrtalktube-debug/personal-dashboard/internal/stocks"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	service *stocks.Service
}

// NewHandler creates a new Handler
func NewHandler(service *stocks.Service) *Handler {
	return &Handler{service: service}
}

// stocksRequest is the single inbound shape: either a symbol list
// (watchlist mode) or mode "recommendations" (scan mode).
type stocksRequest struct {
	Symbols []string `json:"symbols"`
	Mode    string   `json:"mode"`
}

// Stocks handles POST /api/v1/stocks
func (h *Handler) Stocks(w http.ResponseWriter, r *http.Request) {
	var req stocksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Mode == "recommendations" {
		h.Recommendations(w, r)
		return
	}

	if req.Symbols == nil {
		respondError(w, http.StatusBadRequest, "no symbols received")
		return
	}

	records, err := h.service.Watchlist(r.Context(), req.Symbols)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// Recommendations handles GET /api/v1/recommendations and scan-mode
// POSTs delegated from Stocks.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.Recommendations(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
