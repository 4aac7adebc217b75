package service

import "errors"

// Validation errors
var (
	ErrMissingAnonID      = errors.New("anonId is required")
	ErrInvalidPhase       = errors.New("phase must be pre or post")
	ErrUnknownQuestionKey = errors.New("answer references an unknown question key")
	ErrEmptyAnswers       = errors.New("answers are required")
	ErrEmptyAnswer        = errors.New("answer text is required")
	ErrEmptyMessage       = errors.New("message text is required")
	ErrMissingReflection  = errors.New("both reflection fields are required")
	ErrMissingFields      = errors.New("missing required fields")
)

// Not-found errors
var (
	ErrParticipantNotFound  = errors.New("participant not found")
	ErrTrialNotFound        = errors.New("trial not found")
	ErrClassNotFound        = errors.New("class not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrBankNotFound         = errors.New("question bank not found")
)

// State-conflict errors
var (
	ErrPhaseCompleted = errors.New("phase already completed")
	ErrClassCodeTaken = errors.New("class code already in use")
	ErrChatNotAllowed = errors.New("chat is not available for the control group")
)

// Content integrity errors
var (
	ErrScenarioContent = errors.New("no scenario content found in any language")
)

// External service errors
var (
	ErrAITimeout         = errors.New("ai service timed out")
	ErrAIUnavailable     = errors.New("ai service unavailable")
	ErrAIBadPayload      = errors.New("ai service returned an unparseable response")
	ErrTranslationQuota  = errors.New("translation quota exceeded")
	ErrTranslationFailed = errors.New("translation service unavailable")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
