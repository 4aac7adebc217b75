package model

import "time"

// UEQ-S items use a 1-7 semantic differential scale
const (
	UEQScaleMin = 1
	UEQScaleMax = 7
)

// UEQScores are the computed scale means
type UEQScores struct {
	Pragmatic float64 `json:"pragmatic" bson:"pragmatic"`
	Hedonic   float64 `json:"hedonic" bson:"hedonic"`
	Overall   float64 `json:"overall" bson:"overall"`
}

// UEQAssessment is one submitted UEQ-S questionnaire. Unlike the CASEL
// assessment there is no per-participant uniqueness constraint; repeat
// submissions each create a new record.
type UEQAssessment struct {
	ID          string         `json:"id" bson:"_id,omitempty"`
	AnonID      string         `json:"anonId" bson:"anonId"`
	Version     string         `json:"version" bson:"version"`
	Lang        string         `json:"lang" bson:"lang"`
	Ratings     map[string]int `json:"ratings" bson:"ratings"`
	Scores      UEQScores      `json:"scores" bson:"scores"`
	SubmittedAt time.Time      `json:"submittedAt" bson:"submittedAt"`
}
