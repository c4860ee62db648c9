package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/inov8tr/placement-api/internal/model"
	"github.com/inov8tr/placement-api/internal/service"
	"github.com/inov8tr/placement-api/internal/transport/rest/middleware"
)

// TestHandler handles test session endpoints.
type TestHandler struct {
	testSvc *service.TestService
}

// NewTestHandler creates a new test handler.
func NewTestHandler(testSvc *service.TestService) *TestHandler {
	return &TestHandler{testSvc: testSvc}
}

// Assign handles POST /v1/tests (admin)
func (h *TestHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req model.AssignTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.testSvc.Assign(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// sessionScope checks the token's test id against the path. The token is
// scoped to one test; using it against another is a Forbidden.
func sessionScope(r *http.Request) (studentID, testID string, ok bool) {
	studentID = middleware.GetStudentID(r.Context())
	testID = mux.Vars(r)["testId"]
	return studentID, testID, middleware.GetTestID(r.Context()) == testID
}

// NextItem handles GET /v1/tests/{testId}/next (student)
func (h *TestHandler) NextItem(w http.ResponseWriter, r *http.Request) {
	studentID, testID, ok := sessionScope(r)
	if !ok {
		writeError(w, http.StatusForbidden, "token not valid for this test")
		return
	}

	resp, err := h.testSvc.NextItem(r.Context(), studentID, testID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// SubmitAnswer handles POST /v1/tests/{testId}/answers (student)
func (h *TestHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	studentID, testID, ok := sessionScope(r)
	if !ok {
		writeError(w, http.StatusForbidden, "token not valid for this test")
		return
	}

	var req model.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.testSvc.SubmitAnswer(r.Context(), studentID, testID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Heartbeat handles POST /v1/tests/{testId}/heartbeat (student)
func (h *TestHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	studentID, testID, ok := sessionScope(r)
	if !ok {
		writeError(w, http.StatusForbidden, "token not valid for this test")
		return
	}

	var req model.HeartbeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.testSvc.Heartbeat(r.Context(), studentID, testID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Summary handles GET /v1/tests/{testId} (student)
func (h *TestHandler) Summary(w http.ResponseWriter, r *http.Request) {
	studentID, testID, ok := sessionScope(r)
	if !ok {
		writeError(w, http.StatusForbidden, "token not valid for this test")
		return
	}

	summary, err := h.testSvc.Summary(r.Context(), studentID, testID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Report handles GET /v1/tests/{testId}/report (admin)
func (h *TestHandler) Report(w http.ResponseWriter, r *http.Request) {
	testID := mux.Vars(r)["testId"]

	report, err := h.testSvc.Report(r.Context(), testID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// ListByStudent handles GET /v1/tests/student/{studentId} (admin)
func (h *TestHandler) ListByStudent(w http.ResponseWriter, r *http.Request) {
	studentID := mux.Vars(r)["studentId"]

	tests, err := h.testSvc.ListByStudent(r.Context(), studentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tests)
}

// Review handles POST /v1/tests/{testId}/review (admin)
func (h *TestHandler) Review(w http.ResponseWriter, r *http.Request) {
	testID := mux.Vars(r)["testId"]

	test, err := h.testSvc.Review(r.Context(), testID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, test)
}
