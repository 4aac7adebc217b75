package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selstudy/internal/model"
)

func TestEveryAssignableScenarioHasBothLanguages(t *testing.T) {
	variants := map[string]map[string]bool{}
	for _, s := range Scenarios() {
		if variants[s.ScenarioID] == nil {
			variants[s.ScenarioID] = map[string]bool{}
		}
		variants[s.ScenarioID][s.Lang] = s.Active
	}

	for group, scenarioID := range model.GroupScenarios {
		langs, ok := variants[scenarioID]
		require.True(t, ok, "group %s maps to unseeded scenario %s", group, scenarioID)
		assert.True(t, langs[model.LangEN], "%s missing active EN variant", scenarioID)
		assert.True(t, langs[model.LangHE], "%s missing active HE variant", scenarioID)
	}
}

func TestCASELBankIntegrity(t *testing.T) {
	perLang := map[string]map[string]bool{}
	for _, q := range CASELQuestions() {
		assert.Equal(t, model.DefaultCASELVersion, q.Version)
		assert.NotEmpty(t, q.Category)
		assert.NotEmpty(t, q.Text)

		if perLang[q.Lang] == nil {
			perLang[q.Lang] = map[string]bool{}
		}
		assert.False(t, perLang[q.Lang][q.Key], "duplicate key %s in %s", q.Key, q.Lang)
		perLang[q.Lang][q.Key] = true

		require.Len(t, q.Options, model.CASELScaleMax-model.CASELScaleMin+1)
		for i, opt := range q.Options {
			assert.Equal(t, model.CASELScaleMin+i, opt.Value)
			assert.NotEmpty(t, opt.Label)
		}
	}

	// Both languages carry the same key set
	assert.Equal(t, len(perLang[model.LangEN]), len(perLang[model.LangHE]))
	for key := range perLang[model.LangEN] {
		assert.True(t, perLang[model.LangHE][key], "key %s missing in HE", key)
	}
}

func TestUEQBankIntegrity(t *testing.T) {
	counts := map[string]int{}
	pragmatic := map[string]int{}
	for _, item := range UEQItems() {
		assert.Equal(t, model.DefaultUEQVersion, item.Version)
		assert.NotEmpty(t, item.LeftLabel)
		assert.NotEmpty(t, item.RightLabel)
		counts[item.Lang]++
		if item.Pragmatic {
			pragmatic[item.Lang]++
		}
	}

	for _, lang := range []string{model.LangEN, model.LangHE} {
		assert.Equal(t, 8, counts[lang], "UEQ-S has 8 items in %s", lang)
		assert.Equal(t, 4, pragmatic[lang], "half the items are pragmatic in %s", lang)
	}
}
