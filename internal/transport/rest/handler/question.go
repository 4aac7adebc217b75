package handler

import (
	"net/http"

	"selstudy/internal/model"
	"selstudy/internal/service"
)

// QuestionHandler serves the question banks
type QuestionHandler struct {
	questionSvc *service.QuestionService
}

// NewQuestionHandler creates a new question bank handler
func NewQuestionHandler(questionSvc *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionSvc: questionSvc}
}

// CASEL handles GET /api/questionnaires/casel?version=...&lang=...&phase=...
// The bank is the same for both phases; phase is accepted for client
// convenience only.
func (h *QuestionHandler) CASEL(w http.ResponseWriter, r *http.Request) {
	version := r.URL.Query().Get("version")
	if version == "" {
		version = model.DefaultCASELVersion
	}
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = model.LangEN
	}

	questions, err := h.questionSvc.SELQuestions(r.Context(), version, lang)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"version":   version,
		"lang":      lang,
		"questions": questions,
	})
}

// UEQ handles GET /api/questionnaires/ueq?version=...&lang=...
func (h *QuestionHandler) UEQ(w http.ResponseWriter, r *http.Request) {
	version := r.URL.Query().Get("version")
	if version == "" {
		version = model.DefaultUEQVersion
	}
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = model.LangEN
	}

	items, err := h.questionSvc.UEQItems(r.Context(), version, lang)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"version": version,
		"lang":    lang,
		"items":   items,
	})
}
