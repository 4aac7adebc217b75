package service

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selstudy/internal/model"
	"selstudy/internal/repository"
)

func newAssignmentFixture() (*AssignmentService, *memTrialRepo, *memScenarioRepo) {
	trials := newMemTrialRepo()
	scenarios := newMemScenarioRepo()
	scenarios.addAllScenarios()
	svc := NewAssignmentService(trials, scenarios)
	svc.now = func() time.Time { return time.Unix(1000, 0) }
	return svc, trials, scenarios
}

func TestAssignStaticScenarioTable(t *testing.T) {
	for i, group := range model.Groups {
		svc, trials, _ := newAssignmentFixture()
		svc.randIntn = func(n int) int { return i % n }

		res, err := svc.Assign(context.Background(), "anon-"+group)
		require.NoError(t, err)

		assert.Equal(t, group, res.Group)
		assert.Equal(t, model.GroupScenarios[group], res.ScenarioID)
		if group == model.GroupD {
			assert.Equal(t, model.GroupTypeControl, res.GroupType)
		} else {
			assert.Equal(t, model.GroupTypeExperimental, res.GroupType)
		}

		stored := trials.trials["anon-"+group]
		require.NotNil(t, stored)
		assert.Equal(t, res.ScenarioID, stored.ScenarioID)
	}
}

func TestAssignIdempotent(t *testing.T) {
	svc, trials, _ := newAssignmentFixture()
	svc.randIntn = func(n int) int { return 0 }

	first, err := svc.Assign(context.Background(), "anon-1")
	require.NoError(t, err)

	// A different random draw must not change an existing assignment
	svc.randIntn = func(n int) int { return n - 1 }
	second, err := svc.Assign(context.Background(), "anon-1")
	require.NoError(t, err)

	assert.Equal(t, first.Group, second.Group)
	assert.Equal(t, first.ScenarioID, second.ScenarioID)
	assert.Len(t, trials.trials, 1)
}

func TestAssignKeepsGroupsBalanced(t *testing.T) {
	svc, trials, _ := newAssignmentFixture()
	rng := rand.New(rand.NewSource(7))
	svc.randIntn = rng.Intn

	for i := 0; i < 42; i++ {
		_, err := svc.Assign(context.Background(), fmt.Sprintf("anon-%d", i))
		require.NoError(t, err)
	}

	counts, err := trials.CountByGroup(context.Background())
	require.NoError(t, err)

	min, max := counts[model.GroupA], counts[model.GroupA]
	for _, g := range model.Groups {
		if counts[g] < min {
			min = counts[g]
		}
		if counts[g] > max {
			max = counts[g]
		}
	}
	assert.LessOrEqual(t, max-min, 1, "counts: %v", counts)
}

func TestAssignLosesCreateRace(t *testing.T) {
	svc, trials, _ := newAssignmentFixture()
	svc.randIntn = func(n int) int { return 0 }

	// A concurrent assign wins between our existence check and insert
	trials.onCreate = func(*model.Trial) error {
		trials.trials["anon-1"] = &model.Trial{
			AnonID:     "anon-1",
			Group:      model.GroupC,
			GroupType:  model.GroupTypeExperimental,
			ScenarioID: model.GroupScenarios[model.GroupC],
		}
		return repository.ErrDuplicate
	}

	res, err := svc.Assign(context.Background(), "anon-1")
	require.NoError(t, err)
	assert.Equal(t, model.GroupC, res.Group, "the stored trial must win the race")
}

func TestAssignResultCarriesBothLanguages(t *testing.T) {
	trials := newMemTrialRepo()
	scenarios := newMemScenarioRepo()
	// Only the English variant exists
	scenarios.add(&model.Scenario{ScenarioID: "S1", Lang: model.LangEN, Title: "en only", Active: true})
	svc := NewAssignmentService(trials, scenarios)
	svc.randIntn = func(n int) int { return 0 }

	res, err := svc.Assign(context.Background(), "anon-1")
	require.NoError(t, err)

	require.NotNil(t, res.Scenarios[model.LangEN])
	require.NotNil(t, res.Scenarios[model.LangHE])
	assert.Equal(t, "en only", res.Scenarios[model.LangHE].Title)
}

func TestGetTrialLanguageFallback(t *testing.T) {
	trials := newMemTrialRepo()
	scenarios := newMemScenarioRepo()
	scenarios.add(&model.Scenario{ScenarioID: "S1", Lang: model.LangEN, Title: "en", Active: true})
	scenarios.add(&model.Scenario{ScenarioID: "S1", Lang: model.LangHE, Title: "he", Active: false})
	svc := NewAssignmentService(trials, scenarios)
	svc.randIntn = func(n int) int { return 0 }

	_, err := svc.Assign(context.Background(), "anon-1")
	require.NoError(t, err)

	// Hebrew variant is inactive, so the English one is served instead
	_, scenario, err := svc.GetTrial(context.Background(), "anon-1", model.LangHE)
	require.NoError(t, err)
	assert.Equal(t, "en", scenario.Title)
}

func TestGetTrialNoActiveContent(t *testing.T) {
	trials := newMemTrialRepo()
	scenarios := newMemScenarioRepo()
	scenarios.add(&model.Scenario{ScenarioID: "S1", Lang: model.LangEN, Active: false})
	svc := NewAssignmentService(trials, scenarios)

	trials.trials["anon-1"] = &model.Trial{AnonID: "anon-1", Group: model.GroupA, ScenarioID: "S1"}

	_, _, err := svc.GetTrial(context.Background(), "anon-1", model.LangEN)
	assert.ErrorIs(t, err, ErrScenarioContent)
}

func TestAssignValidation(t *testing.T) {
	svc, _, _ := newAssignmentFixture()

	_, err := svc.Assign(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingAnonID)

	_, _, err = svc.GetTrial(context.Background(), "missing", model.LangEN)
	assert.ErrorIs(t, err, ErrTrialNotFound)
}
