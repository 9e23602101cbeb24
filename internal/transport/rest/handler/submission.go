package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"nlpdform/internal/model"
	"nlpdform/internal/repository"
	"nlpdform/internal/service"
)

// SubmissionHandler handles submission and statistics endpoints
type SubmissionHandler struct {
	submissionSvc *service.SubmissionService
	statsSvc      *service.StatsService
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissionSvc *service.SubmissionService, statsSvc *service.StatsService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionSvc: submissionSvc,
		statsSvc:      statsSvc,
	}
}

// UpdateStatusRequest is the request body for updating a submission's status
type UpdateStatusRequest struct {
	Status     string  `json:"status"`
	TeaserText *string `json:"teaser_text,omitempty"`
}

// Create handles POST /api/submissions
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.SubmissionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sub, err := h.submissionSvc.Submit(r.Context(), &input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sub)
}

// List handles GET /api/submissions
func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", 100)
	skip := parseQueryInt(r, "skip", 0)

	subs, err := h.submissionSvc.List(r.Context(), skip, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, subs)
}

// Get handles GET /api/submissions/{id}
func (h *SubmissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	sub, err := h.submissionSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if sub == nil {
		writeError(w, http.StatusNotFound, "submission not found")
		return
	}

	writeJSON(w, http.StatusOK, sub)
}

// UpdateStatus handles PATCH /api/submissions/{id}/status
func (h *SubmissionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.submissionSvc.UpdateStatus(r.Context(), id, req.Status, req.TeaserText); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "submission not found")
			return
		}
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Status updated successfully",
		"id":      id,
		"status":  req.Status,
	})
}

// Stats handles GET /api/stats
func (h *SubmissionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsSvc.Compute(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// parseQueryInt reads a non-negative integer query parameter, falling back
// to the default on absence or garbage
func parseQueryInt(r *http.Request, name string, defaultVal int64) int64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultVal
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || val < 0 {
		return defaultVal
	}
	return val
}
