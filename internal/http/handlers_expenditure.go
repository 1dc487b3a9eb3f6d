package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/making/webfluxfn-handson/internal/core"
	"github.com/making/webfluxfn-handson/internal/log"
)

func (s *Server) handleListExpenditures(w http.ResponseWriter, r *http.Request) {
	expenditures, err := s.backend.Expenditures.FindAll(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to list expenditures", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	writeJSON(w, http.StatusOK, expenditures)
}

func (s *Server) handleCreateExpenditure(w http.ResponseWriter, r *http.Request) {
	var expenditure core.Expenditure
	if err := json.NewDecoder(r.Body).Decode(&expenditure); err != nil {
		writeError(w, http.StatusBadRequest, "The request body is malformed.")
		return
	}

	if violations := expenditure.Validate(); !violations.IsEmpty() {
		writeValidationError(w, violations.Details())
		return
	}

	created, err := s.backend.Expenditures.Save(r.Context(), expenditure)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to save expenditure", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/expenditures/%d", *created.ExpenditureID))
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetExpenditure(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "expenditureId")
	if !ok {
		return
	}

	expenditure, err := s.backend.Expenditures.FindByID(r.Context(), id)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to find expenditure", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if expenditure == nil {
		writeError(w, http.StatusNotFound, "The given expenditure is not found.")
		return
	}

	writeJSON(w, http.StatusOK, expenditure)
}

func (s *Server) handleDeleteExpenditure(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "expenditureId")
	if !ok {
		return
	}

	if err := s.backend.Expenditures.DeleteByID(r.Context(), id); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to delete expenditure", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
