package model

// Supported content languages
const (
	LangEN = "en"
	LangHE = "he"
)

// OtherLang returns the fallback language for a given language
func OtherLang(lang string) string {
	if lang == LangHE {
		return LangEN
	}
	return LangHE
}

// CASEL competency categories
const (
	CategorySelfAwareness      = "self-awareness"
	CategorySelfManagement     = "self-management"
	CategorySocialAwareness    = "social-awareness"
	CategoryRelationshipSkills = "relationship-skills"
	CategoryDecisionMaking     = "responsible-decision-making"
)

// AnswerOption is one choice on the agreement scale
type AnswerOption struct {
	Value int    `json:"value" bson:"value"`
	Label string `json:"label" bson:"label"`
}

// SELQuestion is one CASEL questionnaire item. The (version, lang, key)
// triple is unique; seeding upserts on it so re-runs never duplicate.
type SELQuestion struct {
	ID       string         `json:"id" bson:"_id,omitempty"`
	Version  string         `json:"version" bson:"version"`
	Lang     string         `json:"lang" bson:"lang"`
	Key      string         `json:"key" bson:"key"`
	Category string         `json:"category" bson:"category"`
	Text     string         `json:"text" bson:"text"`
	Order    int            `json:"order" bson:"order"`
	Options  []AnswerOption `json:"options" bson:"options"`
}

// UEQItem is one UEQ-S semantic differential pair, unique on (version, lang, key)
type UEQItem struct {
	ID         string `json:"id" bson:"_id,omitempty"`
	Version    string `json:"version" bson:"version"`
	Lang       string `json:"lang" bson:"lang"`
	Key        string `json:"key" bson:"key"`
	LeftLabel  string `json:"leftLabel" bson:"leftLabel"`
	RightLabel string `json:"rightLabel" bson:"rightLabel"`
	Order      int    `json:"order" bson:"order"`
	Pragmatic  bool   `json:"pragmatic" bson:"pragmatic"` // false = hedonic quality item
}

// DefaultCASELVersion is the active question bank version
const DefaultCASELVersion = "v1"

// DefaultUEQVersion is the active UEQ-S item bank version
const DefaultUEQVersion = "v1"
