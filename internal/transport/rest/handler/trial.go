package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"selstudy/internal/service"
)

// TrialHandler handles trial lifecycle endpoints
type TrialHandler struct {
	trialSvc *service.TrialService
}

// NewTrialHandler creates a new trial handler
func NewTrialHandler(trialSvc *service.TrialService) *TrialHandler {
	return &TrialHandler{trialSvc: trialSvc}
}

// Start handles POST /api/trials/{anonId}/start
func (h *TrialHandler) Start(w http.ResponseWriter, r *http.Request) {
	anonID := mux.Vars(r)["anonId"]

	if err := h.trialSvc.Start(r.Context(), anonID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AnswerRequest is the free-text answer body
type AnswerRequest struct {
	Answer string `json:"answer"`
}

// SubmitAnswer handles POST /api/trials/{anonId}/answer. The AI analysis runs
// synchronously; the response is not sent until it returns.
func (h *TrialHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	anonID := mux.Vars(r)["anonId"]

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}

	analysis, legacyText, err := h.trialSvc.SubmitAnswer(r.Context(), anonID, req.Answer)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"analysis":     analysis,
		"analysisText": legacyText,
	})
}

// ChatRequest is one chat turn body
type ChatRequest struct {
	Message string `json:"message"`
}

// Chat handles POST /api/trials/{anonId}/chat
func (h *TrialHandler) Chat(w http.ResponseWriter, r *http.Request) {
	anonID := mux.Vars(r)["anonId"]

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}

	reply, err := h.trialSvc.SendChatMessage(r.Context(), anonID, req.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"reply": reply})
}

// FinishChat handles POST /api/trials/{anonId}/chat/finish
func (h *TrialHandler) FinishChat(w http.ResponseWriter, r *http.Request) {
	anonID := mux.Vars(r)["anonId"]

	outcome, stats, err := h.trialSvc.FinishChat(r.Context(), anonID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"summary":         outcome.Summary,
		"recommendations": outcome.Recommendations,
		"stats":           stats,
	})
}

// ReflectionRequest holds the two required closing fields
type ReflectionRequest struct {
	Learned     string `json:"learned"`
	WouldChange string `json:"wouldChange"`
}

// SubmitReflection handles POST /api/trials/{anonId}/reflection
func (h *TrialHandler) SubmitReflection(w http.ResponseWriter, r *http.Request) {
	anonID := mux.Vars(r)["anonId"]

	var req ReflectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}

	if err := h.trialSvc.SubmitReflection(r.Context(), anonID, req.Learned, req.WouldChange); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
