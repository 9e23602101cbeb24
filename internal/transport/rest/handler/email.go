package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"nlpdform/internal/model"
	"nlpdform/internal/service"
)

// EmailHandler handles email output endpoints
type EmailHandler struct {
	emailSvc *service.EmailService
}

// NewEmailHandler creates a new email output handler
func NewEmailHandler(emailSvc *service.EmailService) *EmailHandler {
	return &EmailHandler{emailSvc: emailSvc}
}

// Create handles POST /api/emails
func (h *EmailHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.EmailOutputInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	output, err := h.emailSvc.Create(r.Context(), &input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, output)
}

// Get handles GET /api/emails/{submissionId}
func (h *EmailHandler) Get(w http.ResponseWriter, r *http.Request) {
	submissionID := mux.Vars(r)["submissionId"]

	output, err := h.emailSvc.GetBySubmissionID(r.Context(), submissionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if output == nil {
		writeError(w, http.StatusNotFound, "email output not found")
		return
	}

	writeJSON(w, http.StatusOK, output)
}
