package model

// Scenario is one language variant of a study scenario, unique on
// (scenarioId, lang). Inactive variants are skipped by the language fallback.
type Scenario struct {
	ID                string   `json:"id" bson:"_id,omitempty"`
	ScenarioID        string   `json:"scenarioId" bson:"scenarioId"`
	Lang              string   `json:"lang" bson:"lang"`
	Title             string   `json:"title" bson:"title"`
	Situation         string   `json:"situation" bson:"situation"`
	QuestionPrompt    string   `json:"questionPrompt" bson:"questionPrompt"`
	ReflectionPrompts []string `json:"reflectionPrompts" bson:"reflectionPrompts"`
	SELTags           []string `json:"selTags" bson:"selTags"`
	Active            bool     `json:"active" bson:"active"`
}
