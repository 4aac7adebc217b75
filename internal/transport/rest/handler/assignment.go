package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"selstudy/internal/model"
	"selstudy/internal/service"
)

// AssignmentHandler handles assignment and trial read endpoints
type AssignmentHandler struct {
	assignmentSvc *service.AssignmentService
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(assignmentSvc *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc}
}

// AssignRequest is the assignment request body
type AssignRequest struct {
	AnonID string `json:"anonId"`
	Lang   string `json:"lang"`
}

// Assign handles POST /api/assignments
func (h *AssignmentHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}

	result, err := h.assignmentSvc.Assign(r.Context(), req.AnonID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetTrial handles GET /api/assignments/{anonId}
func (h *AssignmentHandler) GetTrial(w http.ResponseWriter, r *http.Request) {
	anonID := mux.Vars(r)["anonId"]
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = model.LangEN
	}

	trial, scenario, err := h.assignmentSvc.GetTrial(r.Context(), anonID, lang)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"trial":    trial,
		"scenario": scenario,
	})
}
