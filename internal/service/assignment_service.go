package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"selstudy/internal/model"
	"selstudy/internal/repository"
)

// AssignmentService assigns participants to balanced groups and fixed
// scenarios. Assignment is idempotent: a participant is never reassigned.
type AssignmentService struct {
	trialRepo    repository.TrialRepo
	scenarioRepo repository.ScenarioRepo

	// Injectable for deterministic tests
	randIntn func(n int) int
	now      func() time.Time
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(trialRepo repository.TrialRepo, scenarioRepo repository.ScenarioRepo) *AssignmentService {
	return &AssignmentService{
		trialRepo:    trialRepo,
		scenarioRepo: scenarioRepo,
		randIntn:     rand.Intn,
		now:          time.Now,
	}
}

// AssignmentResult is the response to an assignment request. Scenarios holds
// every available language variant so the client can render immediately in
// either UI language.
type AssignmentResult struct {
	AnonID     string                     `json:"anonId"`
	Group      string                     `json:"group"`
	GroupType  string                     `json:"groupType"`
	ScenarioID string                     `json:"scenarioId"`
	Scenarios  map[string]*model.Scenario `json:"scenarios"`
}

// Assign returns the participant's group and scenario, creating the Trial on
// first contact. Balancing counts existing trials per group and picks
// uniformly among the groups tied at the minimum; under concurrent first
// contacts the counts may be briefly stale, which skews a bucket by at most
// the number of racers and self-corrects on later assignments.
func (s *AssignmentService) Assign(ctx context.Context, anonID string) (*AssignmentResult, error) {
	if anonID == "" {
		return nil, ErrMissingAnonID
	}

	existing, err := s.trialRepo.FindByAnonID(ctx, anonID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.resultFor(ctx, existing)
	}

	counts, err := s.trialRepo.CountByGroup(ctx)
	if err != nil {
		return nil, err
	}

	group := s.pickGroup(counts)
	trial := &model.Trial{
		AnonID:     anonID,
		Group:      group,
		GroupType:  model.GroupTypeFor(group),
		ScenarioID: model.GroupScenarios[group],
		AssignedAt: s.now(),
	}

	if err := s.trialRepo.Create(ctx, trial); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost a race against a concurrent assign for the same
			// participant; the stored trial wins.
			stored, ferr := s.trialRepo.FindByAnonID(ctx, anonID)
			if ferr != nil {
				return nil, ferr
			}
			if stored != nil {
				return s.resultFor(ctx, stored)
			}
		}
		return nil, err
	}

	return s.resultFor(ctx, trial)
}

// GetTrial fetches a trial with its scenario localized to lang, falling back
// to the other language when the requested variant is inactive or missing
func (s *AssignmentService) GetTrial(ctx context.Context, anonID, lang string) (*model.Trial, *model.Scenario, error) {
	if anonID == "" {
		return nil, nil, ErrMissingAnonID
	}

	trial, err := s.trialRepo.FindByAnonID(ctx, anonID)
	if err != nil {
		return nil, nil, err
	}
	if trial == nil {
		return nil, nil, ErrTrialNotFound
	}

	variants, err := s.activeVariants(ctx, trial.ScenarioID)
	if err != nil {
		return nil, nil, err
	}

	scenario := variants[lang]
	if scenario == nil {
		scenario = variants[model.OtherLang(lang)]
	}
	if scenario == nil {
		return nil, nil, ErrScenarioContent
	}
	return trial, scenario, nil
}

// pickGroup chooses uniformly among the groups tied at the minimum count
func (s *AssignmentService) pickGroup(counts map[string]int) string {
	min := -1
	for _, g := range model.Groups {
		if min == -1 || counts[g] < min {
			min = counts[g]
		}
	}

	var tied []string
	for _, g := range model.Groups {
		if counts[g] == min {
			tied = append(tied, g)
		}
	}
	return tied[s.randIntn(len(tied))]
}

func (s *AssignmentService) resultFor(ctx context.Context, trial *model.Trial) (*AssignmentResult, error) {
	variants, err := s.activeVariants(ctx, trial.ScenarioID)
	if err != nil {
		return nil, err
	}
	if len(variants) == 0 {
		return nil, ErrScenarioContent
	}

	// Fill a missing language from the other so the client always has both
	for _, lang := range []string{model.LangEN, model.LangHE} {
		if variants[lang] == nil {
			variants[lang] = variants[model.OtherLang(lang)]
		}
	}

	return &AssignmentResult{
		AnonID:     trial.AnonID,
		Group:      trial.Group,
		GroupType:  trial.GroupType,
		ScenarioID: trial.ScenarioID,
		Scenarios:  variants,
	}, nil
}

func (s *AssignmentService) activeVariants(ctx context.Context, scenarioID string) (map[string]*model.Scenario, error) {
	all, err := s.scenarioRepo.FindVariants(ctx, scenarioID)
	if err != nil {
		return nil, err
	}

	variants := make(map[string]*model.Scenario)
	for _, sc := range all {
		if sc.Active {
			variants[sc.Lang] = sc
		}
	}
	return variants, nil
}
