package handler

import (
	"encoding/json"
	"net/http"

	"selstudy/internal/service"
)

// TranslateHandler handles batched UI-string translation
type TranslateHandler struct {
	translationSvc *service.TranslationService
}

// NewTranslateHandler creates a new translation handler
func NewTranslateHandler(translationSvc *service.TranslationService) *TranslateHandler {
	return &TranslateHandler{translationSvc: translationSvc}
}

// TranslateRequest is the batched translation body
type TranslateRequest struct {
	SourceLang string   `json:"sourceLang"`
	TargetLang string   `json:"targetLang"`
	Texts      []string `json:"texts"`
}

// Translate handles POST /api/translate. Quota exhaustion surfaces as 429
// TRANSLATION_QUOTA_EXCEEDED so the client can fall back to source text; the
// server never substitutes silently.
func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	if req.SourceLang == "" || req.TargetLang == "" {
		writeError(w, http.StatusBadRequest, "MISSING_FIELDS", "sourceLang and targetLang are required")
		return
	}

	translated, err := h.translationSvc.TranslateBatch(r.Context(), req.SourceLang, req.TargetLang, req.Texts)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"texts": translated})
}
