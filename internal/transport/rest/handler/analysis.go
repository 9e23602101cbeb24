package handler

import (
	"encoding/json"
	"net/http"

	"nlpdform/internal/model"
	"nlpdform/internal/service"
)

// AnalysisHandler handles the AI analysis endpoint
type AnalysisHandler struct {
	analysisSvc *service.AnalysisService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisSvc *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisSvc: analysisSvc}
}

// AnalyzeRequest is the request body for requesting an analysis
type AnalyzeRequest struct {
	Payload *model.AnalysisPayload `json:"payload"`
}

// Analyze handles POST /api/analyze
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Payload == nil {
		writeError(w, http.StatusBadRequest, "missing payload")
		return
	}

	result, err := h.analysisSvc.Analyze(r.Context(), req.Payload)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
