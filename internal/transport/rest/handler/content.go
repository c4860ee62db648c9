package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/inov8tr/placement-api/internal/model"
	"github.com/inov8tr/placement-api/internal/service"
)

// ContentHandler handles catalog management endpoints (admin only).
type ContentHandler struct {
	contentSvc *service.ContentService
}

// NewContentHandler creates a new content handler.
func NewContentHandler(contentSvc *service.ContentService) *ContentHandler {
	return &ContentHandler{contentSvc: contentSvc}
}

// CreateQuestion handles POST /v1/content/questions
func (h *ContentHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var q model.Question
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.contentSvc.CreateQuestion(r.Context(), &q)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// ListQuestions handles GET /v1/content/questions/{section}
func (h *ContentHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	section := model.Section(mux.Vars(r)["section"])

	questions, err := h.contentSvc.ListQuestions(r.Context(), section)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, questions)
}

// DeleteQuestion handles DELETE /v1/content/questions/{id}
func (h *ContentHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if err := h.contentSvc.DeleteQuestion(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// CreatePassage handles POST /v1/content/passages
func (h *ContentHandler) CreatePassage(w http.ResponseWriter, r *http.Request) {
	var p model.Passage
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.contentSvc.CreatePassage(r.Context(), &p)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// GetPassage handles GET /v1/content/passages/{id}
func (h *ContentHandler) GetPassage(w http.ResponseWriter, r *http.Request) {
	passage, err := h.contentSvc.GetPassage(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if passage == nil {
		writeError(w, http.StatusNotFound, "passage not found")
		return
	}

	writeJSON(w, http.StatusOK, passage)
}

// DeletePassage handles DELETE /v1/content/passages/{id}
func (h *ContentHandler) DeletePassage(w http.ResponseWriter, r *http.Request) {
	if err := h.contentSvc.DeletePassage(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
