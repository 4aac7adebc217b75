package model

import "time"

// Questionnaire phases
const (
	PhasePre  = "pre"
	PhasePost = "post"
)

// ValidPhase reports whether p is a known questionnaire phase
func ValidPhase(p string) bool {
	return p == PhasePre || p == PhasePost
}

// CASEL answers use a 1-4 agreement scale
const (
	CASELScaleMin = 1
	CASELScaleMax = 4
)

// AssessmentAnswer is one answered question
type AssessmentAnswer struct {
	QuestionKey string `json:"questionKey" bson:"questionKey"`
	Value       int    `json:"value" bson:"value"`
}

// Assessment is one completed CASEL questionnaire. Exactly one may exist per
// (anonId, phase); the unique index on that pair is the race-breaker.
type Assessment struct {
	ID          string             `json:"id" bson:"_id,omitempty"`
	AnonID      string             `json:"anonId" bson:"anonId"`
	Phase       string             `json:"phase" bson:"phase"`
	Version     string             `json:"version" bson:"version"`
	Lang        string             `json:"lang" bson:"lang"`
	Answers     []AssessmentAnswer `json:"answers" bson:"answers"`
	StartedAt   time.Time          `json:"startedAt" bson:"startedAt"`
	CompletedAt time.Time          `json:"completedAt" bson:"completedAt"`
}

// PhaseStatus is the phase-gate check result
type PhaseStatus struct {
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
