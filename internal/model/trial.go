package model

import "time"

// Group letters. A/B/C are experimental variants, D is control.
const (
	GroupA = "A"
	GroupB = "B"
	GroupC = "C"
	GroupD = "D"
)

// Groups lists all allocation buckets in a fixed order
var Groups = []string{GroupA, GroupB, GroupC, GroupD}

const (
	GroupTypeExperimental = "experimental"
	GroupTypeControl      = "control"
)

// GroupScenarios is the static group -> scenario table
var GroupScenarios = map[string]string{
	GroupA: "S1",
	GroupB: "S3",
	GroupC: "S10",
	GroupD: "S14",
}

// GroupTypeFor collapses a group letter into experimental/control
func GroupTypeFor(group string) string {
	if group == GroupD {
		return GroupTypeControl
	}
	return GroupTypeExperimental
}

// ChatMessage is one turn in the Socratic chat transcript
type ChatMessage struct {
	Sender    string    `json:"sender" bson:"sender"` // "participant" or "assistant"
	Text      string    `json:"text" bson:"text"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

const (
	SenderParticipant = "participant"
	SenderAssistant   = "assistant"
)

// SELAnalysis is the structured AI analysis of a free-text answer
type SELAnalysis struct {
	EmpathyScore           int      `json:"empathyScore" bson:"empathyScore"`                     // 1-10
	PerspectiveTakingScore int      `json:"perspectiveTakingScore" bson:"perspectiveTakingScore"` // 1-10
	EmotionRegulationScore int      `json:"emotionRegulationScore" bson:"emotionRegulationScore"` // 1-10
	Strengths              []string `json:"strengths" bson:"strengths"`
	Suggestions            []string `json:"suggestions" bson:"suggestions"`
	Summary                string   `json:"summary" bson:"summary"`
}

// ChatStats are simple counters derived from the finished transcript
type ChatStats struct {
	MessageCount            int `json:"messageCount" bson:"messageCount"`
	ParticipantMessageCount int `json:"participantMessageCount" bson:"participantMessageCount"`
}

// Reflection holds the two required free-text closing fields
type Reflection struct {
	Learned     string    `json:"learned" bson:"learned"`
	WouldChange string    `json:"wouldChange" bson:"wouldChange"`
	SubmittedAt time.Time `json:"submittedAt" bson:"submittedAt"`
}

// Trial is the canonical per-participant study record. At most one Trial
// exists per anonId, and once ScenarioID is set it never changes, so a
// participant sees the same scenario across sessions and devices.
type Trial struct {
	ID         string `json:"id" bson:"_id,omitempty"`
	AnonID     string `json:"anonId" bson:"anonId"`
	Group      string `json:"group" bson:"group"`
	GroupType  string `json:"groupType" bson:"groupType"`
	ScenarioID string `json:"scenarioId" bson:"scenarioId"`

	AssignedAt time.Time  `json:"assignedAt" bson:"assignedAt"`
	StartedAt  *time.Time `json:"startedAt,omitempty" bson:"startedAt,omitempty"`
	EndedAt    *time.Time `json:"endedAt,omitempty" bson:"endedAt,omitempty"`

	Answer         string        `json:"answer,omitempty" bson:"answer,omitempty"`
	AnalysisText   string        `json:"analysisText,omitempty" bson:"analysisText,omitempty"` // legacy free-text form
	Analysis       *SELAnalysis  `json:"analysis,omitempty" bson:"analysis,omitempty"`
	ChatTranscript []ChatMessage `json:"chatTranscript,omitempty" bson:"chatTranscript,omitempty"`

	ChatSummary         string     `json:"chatSummary,omitempty" bson:"chatSummary,omitempty"`
	ChatRecommendations []string   `json:"chatRecommendations,omitempty" bson:"chatRecommendations,omitempty"`
	ChatStats           *ChatStats `json:"chatStats,omitempty" bson:"chatStats,omitempty"`

	Reflection *Reflection `json:"reflection,omitempty" bson:"reflection,omitempty"`
}

// IsControl reports whether this trial belongs to the control group
func (t *Trial) IsControl() bool {
	return t.GroupType == GroupTypeControl
}
