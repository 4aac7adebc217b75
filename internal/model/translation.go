package model

import "time"

// TranslationEntry is a content-addressed memoization record for one
// translated string. Key is a digest of (sourceLang, targetLang, text);
// entries are append-only and never invalidated.
type TranslationEntry struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	Key        string    `json:"key" bson:"key"`
	SourceLang string    `json:"sourceLang" bson:"sourceLang"`
	TargetLang string    `json:"targetLang" bson:"targetLang"`
	Original   string    `json:"original" bson:"original"`
	Translated string    `json:"translated" bson:"translated"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}
