package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"nlpdform/internal/model"
	"nlpdform/internal/service"
)

// StatusHandler handles liveness, health and legacy status check endpoints
type StatusHandler struct {
	statusSvc *service.StatusService
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(statusSvc *service.StatusService) *StatusHandler {
	return &StatusHandler{statusSvc: statusSvc}
}

// Root handles GET /api/
func (h *StatusHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "nLPD compliance form API is running",
	})
}

// Health handles GET /api/health
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// CreateCheck handles POST /api/status
func (h *StatusHandler) CreateCheck(w http.ResponseWriter, r *http.Request) {
	var input model.StatusCheckInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	check, err := h.statusSvc.CreateCheck(r.Context(), &input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, check)
}

// ListChecks handles GET /api/status
func (h *StatusHandler) ListChecks(w http.ResponseWriter, r *http.Request) {
	checks, err := h.statusSvc.ListChecks(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, checks)
}
