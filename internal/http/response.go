package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the envelope returned for every non-2xx response.
type ErrorResponse struct {
	Status  int                 `json:"status"`
	Error   string              `json:"error"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response body", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{
		Status:  status,
		Error:   http.StatusText(status),
		Message: message,
	})
}

func writeValidationError(w http.ResponseWriter, details map[string][]string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Status:  http.StatusBadRequest,
		Error:   http.StatusText(http.StatusBadRequest),
		Details: details,
	})
}
