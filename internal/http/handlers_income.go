package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/making/webfluxfn-handson/internal/core"
	"github.com/making/webfluxfn-handson/internal/log"
)

func (s *Server) handleListIncomes(w http.ResponseWriter, r *http.Request) {
	incomes, err := s.backend.Incomes.FindAll(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to list incomes", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	writeJSON(w, http.StatusOK, incomes)
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	var income core.Income
	if err := json.NewDecoder(r.Body).Decode(&income); err != nil {
		writeError(w, http.StatusBadRequest, "The request body is malformed.")
		return
	}

	if violations := income.Validate(); !violations.IsEmpty() {
		writeValidationError(w, violations.Details())
		return
	}

	created, err := s.backend.Incomes.Save(r.Context(), income)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to save income", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/incomes/%d", *created.IncomeID))
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetIncome(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "incomeId")
	if !ok {
		return
	}

	income, err := s.backend.Incomes.FindByID(r.Context(), id)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to find income", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if income == nil {
		writeError(w, http.StatusNotFound, "The given income is not found.")
		return
	}

	writeJSON(w, http.StatusOK, income)
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "incomeId")
	if !ok {
		return
	}

	if err := s.backend.Incomes.DeleteByID(r.Context(), id); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to delete income", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseID reads a numeric path value. A non-integer id gets a 400 envelope.
func parseID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%q must be a number", name))
		return 0, false
	}
	return id, true
}
