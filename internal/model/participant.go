package model

import "time"

// Demographics are optional self-reported attributes of a participant
type Demographics struct {
	Gender       string `json:"gender,omitempty" bson:"gender,omitempty"`
	AgeRange     string `json:"ageRange,omitempty" bson:"ageRange,omitempty"`
	FieldOfStudy string `json:"fieldOfStudy,omitempty" bson:"fieldOfStudy,omitempty"`
	Semester     string `json:"semester,omitempty" bson:"semester,omitempty"`
}

// Participant is an anonymous study participant, identified solely by AnonID.
// Participants are created on first contact and never deleted.
type Participant struct {
	ID           string       `json:"id" bson:"_id,omitempty"`
	AnonID       string       `json:"anonId" bson:"anonId"`
	Demographics Demographics `json:"demographics,omitempty" bson:"demographics,omitempty"`
	CreatedAt    time.Time    `json:"createdAt" bson:"createdAt"`
	LastSeenAt   time.Time    `json:"lastSeenAt" bson:"lastSeenAt"`
}

// SessionSummary is computed for the exit screen
type SessionSummary struct {
	AnonID          string    `json:"anonId"`
	StartedAt       time.Time `json:"startedAt"`
	LastSeenAt      time.Time `json:"lastSeenAt"`
	DurationSeconds int64     `json:"durationSeconds"`
}
