package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"selstudy/internal/model"
	"selstudy/internal/service"
)

// AnonymousHandler handles anonymous participant endpoints
type AnonymousHandler struct {
	participantSvc *service.ParticipantService
}

// NewAnonymousHandler creates a new anonymous participant handler
func NewAnonymousHandler(participantSvc *service.ParticipantService) *AnonymousHandler {
	return &AnonymousHandler{participantSvc: participantSvc}
}

// Register handles POST /api/anonymous/register
func (h *AnonymousHandler) Register(w http.ResponseWriter, r *http.Request) {
	p, err := h.participantSvc.Register(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"anonId":    p.AnonID,
		"createdAt": p.CreatedAt,
	})
}

// DemographicsRequest is the demographics submission body
type DemographicsRequest struct {
	Gender       string `json:"gender"`
	AgeRange     string `json:"ageRange"`
	FieldOfStudy string `json:"fieldOfStudy"`
	Semester     string `json:"semester"`
}

// Demographics handles PUT /api/anonymous/{anonId}/demographics
func (h *AnonymousHandler) Demographics(w http.ResponseWriter, r *http.Request) {
	anonID := mux.Vars(r)["anonId"]

	var req DemographicsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}

	d := model.Demographics{
		Gender:       req.Gender,
		AgeRange:     req.AgeRange,
		FieldOfStudy: req.FieldOfStudy,
		Semester:     req.Semester,
	}
	if err := h.participantSvc.SetDemographics(r.Context(), anonID, d); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// UpdateLastSeen handles PATCH /api/anonymous/{anonId}/last-seen
func (h *AnonymousHandler) UpdateLastSeen(w http.ResponseWriter, r *http.Request) {
	anonID := mux.Vars(r)["anonId"]

	if err := h.participantSvc.TouchLastSeen(r.Context(), anonID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SessionSummary handles GET /api/anonymous/{anonId}/summary
func (h *AnonymousHandler) SessionSummary(w http.ResponseWriter, r *http.Request) {
	anonID := mux.Vars(r)["anonId"]

	summary, err := h.participantSvc.SessionSummary(r.Context(), anonID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
