package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"selstudy/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError emits the uniform {error, code} body the client branches on
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message, "code": code})
}

// writeServiceError maps service errors onto the HTTP taxonomy: 400
// validation, 404 not-found, 409 state-conflict, 429 quota, 5xx upstream.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingAnonID):
		writeError(w, http.StatusBadRequest, "MISSING_ANON_ID", err.Error())
	case errors.Is(err, service.ErrInvalidPhase):
		writeError(w, http.StatusBadRequest, "INVALID_PHASE", err.Error())
	case errors.Is(err, service.ErrUnknownQuestionKey):
		writeError(w, http.StatusBadRequest, "UNKNOWN_QUESTION_KEY", err.Error())
	case errors.Is(err, service.ErrEmptyAnswers):
		writeError(w, http.StatusBadRequest, "MISSING_ANSWERS", err.Error())
	case errors.Is(err, service.ErrEmptyAnswer):
		writeError(w, http.StatusBadRequest, "MISSING_ANSWER", err.Error())
	case errors.Is(err, service.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, "MISSING_MESSAGE", err.Error())
	case errors.Is(err, service.ErrMissingReflection):
		writeError(w, http.StatusBadRequest, "MISSING_REFLECTION", err.Error())
	case errors.Is(err, service.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "MISSING_FIELDS", err.Error())
	case errors.Is(err, service.ErrParticipantNotFound):
		writeError(w, http.StatusNotFound, "PARTICIPANT_NOT_FOUND", err.Error())
	case errors.Is(err, service.ErrTrialNotFound):
		writeError(w, http.StatusNotFound, "TRIAL_NOT_FOUND", err.Error())
	case errors.Is(err, service.ErrClassNotFound):
		writeError(w, http.StatusNotFound, "CLASS_NOT_FOUND", err.Error())
	case errors.Is(err, service.ErrNotificationNotFound):
		writeError(w, http.StatusNotFound, "NOTIFICATION_NOT_FOUND", err.Error())
	case errors.Is(err, service.ErrBankNotFound):
		writeError(w, http.StatusNotFound, "BANK_NOT_FOUND", err.Error())
	case errors.Is(err, service.ErrPhaseCompleted):
		writeError(w, http.StatusConflict, "PHASE_ALREADY_COMPLETED", err.Error())
	case errors.Is(err, service.ErrClassCodeTaken):
		writeError(w, http.StatusConflict, "CLASS_CODE_TAKEN", err.Error())
	case errors.Is(err, service.ErrChatNotAllowed):
		writeError(w, http.StatusForbidden, "CHAT_NOT_ALLOWED", err.Error())
	case errors.Is(err, service.ErrTranslationQuota):
		writeError(w, http.StatusTooManyRequests, "TRANSLATION_QUOTA_EXCEEDED", err.Error())
	case errors.Is(err, service.ErrTranslationFailed):
		writeError(w, http.StatusBadGateway, "TRANSLATION_FAILED", err.Error())
	case errors.Is(err, service.ErrAITimeout):
		writeError(w, http.StatusGatewayTimeout, "AI_TIMEOUT", err.Error())
	case errors.Is(err, service.ErrAIUnavailable), errors.Is(err, service.ErrAIBadPayload):
		writeError(w, http.StatusBadGateway, "AI_UNAVAILABLE", err.Error())
	case errors.Is(err, service.ErrScenarioContent):
		writeError(w, http.StatusInternalServerError, "SCENARIO_CONTENT_MISSING", err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
	default:
		log.Printf("unhandled error: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "something went wrong, please try again")
	}
}
