package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"selstudy/internal/service"
	"selstudy/internal/transport/rest/middleware"
)

// ClassHandler handles teacher class endpoints
type ClassHandler struct {
	classSvc *service.ClassService
}

// NewClassHandler creates a new class handler
func NewClassHandler(classSvc *service.ClassService) *ClassHandler {
	return &ClassHandler{classSvc: classSvc}
}

// CreateClassRequest is the class creation body
type CreateClassRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Create handles POST /api/classes
func (h *ClassHandler) Create(w http.ResponseWriter, r *http.Request) {
	teacherID := middleware.GetTeacherID(r.Context())

	var req CreateClassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}

	class, err := h.classSvc.CreateClass(r.Context(), teacherID, req.Name, req.Code)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, class)
}

// List handles GET /api/classes
func (h *ClassHandler) List(w http.ResponseWriter, r *http.Request) {
	teacherID := middleware.GetTeacherID(r.Context())

	classes, err := h.classSvc.ListClasses(r.Context(), teacherID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"classes": classes})
}

// ListSubmissions handles GET /api/classes/{classId}/submissions
func (h *ClassHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	teacherID := middleware.GetTeacherID(r.Context())
	classID := mux.Vars(r)["classId"]

	subs, err := h.classSvc.ListSubmissions(r.Context(), teacherID, classID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"submissions": subs})
}

// StudentSubmissionRequest is a student's answer by class code
type StudentSubmissionRequest struct {
	StudentName string `json:"studentName"`
	ScenarioID  string `json:"scenarioId"`
	Answer      string `json:"answer"`
}

// SubmitStudentAnswer handles POST /api/classes/join/{code}/submissions. Public:
// students join by class code, no account needed. The AI scoring runs before
// the response is sent.
func (h *ClassHandler) SubmitStudentAnswer(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req StudentSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}

	sub, err := h.classSvc.SubmitStudentAnswer(r.Context(), code, req.StudentName, req.ScenarioID, req.Answer)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sub)
}
