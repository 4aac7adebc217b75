package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"selstudy/internal/service"
)

// UEQHandler handles UEQ-S submission endpoints
type UEQHandler struct {
	ueqSvc   *service.UEQService
	trialSvc *service.TrialService
}

// NewUEQHandler creates a new UEQ handler
func NewUEQHandler(ueqSvc *service.UEQService, trialSvc *service.TrialService) *UEQHandler {
	return &UEQHandler{
		ueqSvc:   ueqSvc,
		trialSvc: trialSvc,
	}
}

// Submit handles POST /api/ueq/assessments. The UEQ is the final step for
// control participants, so it also stamps the trial's end time.
func (h *UEQHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req service.UEQSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}

	assessment, err := h.ueqSvc.Submit(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := h.trialSvc.End(r.Context(), req.AnonID); err != nil {
		log.Printf("failed to stamp trial end for %s: %v", req.AnonID, err)
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":          assessment.ID,
		"scores":      assessment.Scores,
		"submittedAt": assessment.SubmittedAt,
	})
}
