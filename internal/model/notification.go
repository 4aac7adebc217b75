package model

import "time"

// Notification types
const (
	NotificationSubmissionScored = "submission_scored"
	NotificationClassCreated     = "class_created"
	NotificationSystem           = "system"
)

// Notification is a teacher-facing notification. Titles for all languages
// live on the one document, so marking it read is consistent across every
// language view by construction.
type Notification struct {
	ID        string            `json:"id" bson:"_id,omitempty"`
	TeacherID string            `json:"teacherId" bson:"teacherId"`
	Type      string            `json:"type" bson:"type"`
	Titles    map[string]string `json:"titles" bson:"titles"` // lang -> title
	Read      bool              `json:"read" bson:"read"`
	CreatedAt time.Time         `json:"createdAt" bson:"createdAt"`
}

// TitleFor returns the title in lang, falling back to the other language
func (n *Notification) TitleFor(lang string) string {
	if t := n.Titles[lang]; t != "" {
		return t
	}
	return n.Titles[OtherLang(lang)]
}

// NotificationView is the localized read-path shape
type NotificationView struct {
	ID        string    `json:"id"`
	TeacherID string    `json:"teacherId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Lang      string    `json:"lang"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
