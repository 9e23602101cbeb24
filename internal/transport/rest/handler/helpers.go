package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"nlpdform/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeServiceError maps service-level errors onto HTTP statuses: validation
// failures become 400, assistant timeouts 504, assistant failures 502, and
// everything else 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, validationErr.Error())
		return
	}
	if errors.Is(err, service.ErrAnalysisTimeout) {
		writeError(w, http.StatusGatewayTimeout, "analysis timed out")
		return
	}
	var gatewayErr *service.GatewayError
	if errors.As(err, &gatewayErr) {
		writeError(w, http.StatusBadGateway, gatewayErr.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
