package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/inov8tr/placement-api/internal/model"
	"github.com/inov8tr/placement-api/internal/service"
)

// SurveyHandler handles parent survey intake endpoints.
type SurveyHandler struct {
	surveySvc *service.SurveyService
}

// NewSurveyHandler creates a new survey handler.
func NewSurveyHandler(surveySvc *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveySvc: surveySvc}
}

// Create handles POST /v1/surveys (admin)
func (h *SurveyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var survey model.ParentSurvey
	if err := json.NewDecoder(r.Body).Decode(&survey); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.surveySvc.Create(r.Context(), &survey)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// ListByStudent handles GET /v1/surveys/student/{studentId} (admin)
func (h *SurveyHandler) ListByStudent(w http.ResponseWriter, r *http.Request) {
	studentID := mux.Vars(r)["studentId"]

	surveys, err := h.surveySvc.ListByStudent(r.Context(), studentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, surveys)
}
