package handler

import (
	"encoding/json"
	"net/http"

	"selstudy/internal/service"
)

// AssessmentHandler handles the CASEL phase-gate endpoints
type AssessmentHandler struct {
	assessmentSvc *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentSvc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc}
}

// Status handles GET /api/assessments/status?anonId=...&phase=...
func (h *AssessmentHandler) Status(w http.ResponseWriter, r *http.Request) {
	anonID := r.URL.Query().Get("anonId")
	phase := r.URL.Query().Get("phase")

	status, err := h.assessmentSvc.CheckStatus(r.Context(), anonID, phase)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// Submit handles POST /api/assessments. A repeat submission for a completed
// phase returns 409 PHASE_ALREADY_COMPLETED.
func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}

	assessment, err := h.assessmentSvc.Submit(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":          assessment.ID,
		"completedAt": assessment.CompletedAt,
	})
}
