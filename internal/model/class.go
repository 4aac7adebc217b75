package model

import "time"

// Class is a teacher-created class, joined by students via its unique code
type Class struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	TeacherID string    `json:"teacherId" bson:"teacherId"`
	Name      string    `json:"name" bson:"name"`
	Code      string    `json:"code" bson:"code"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// StudentSubmission is a student's scenario answer with its AI scoring
type StudentSubmission struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	ClassID     string       `json:"classId" bson:"classId"`
	StudentName string       `json:"studentName" bson:"studentName"`
	ScenarioID  string       `json:"scenarioId" bson:"scenarioId"`
	Answer      string       `json:"answer" bson:"answer"`
	Analysis    *SELAnalysis `json:"analysis,omitempty" bson:"analysis,omitempty"`
	Score       int          `json:"score" bson:"score"` // 0-100
	SubmittedAt time.Time    `json:"submittedAt" bson:"submittedAt"`
}
