package service

import (
	"context"
	"errors"
	"time"

	"selstudy/internal/model"
	"selstudy/internal/repository"
)

// AssessmentService is the phase gate for the CASEL questionnaire: it checks
// completion, validates submissions against the active question bank, and
// enforces at-most-one completion per (anonId, phase).
type AssessmentService struct {
	assessmentRepo repository.AssessmentRepo
	questionSvc    *QuestionService

	now func() time.Time
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(assessmentRepo repository.AssessmentRepo, questionSvc *QuestionService) *AssessmentService {
	return &AssessmentService{
		assessmentRepo: assessmentRepo,
		questionSvc:    questionSvc,
		now:            time.Now,
	}
}

// CheckStatus reports whether a phase has been completed for a participant
func (s *AssessmentService) CheckStatus(ctx context.Context, anonID, phase string) (*model.PhaseStatus, error) {
	if anonID == "" {
		return nil, ErrMissingAnonID
	}
	if !model.ValidPhase(phase) {
		return nil, ErrInvalidPhase
	}

	existing, err := s.assessmentRepo.FindByAnonAndPhase(ctx, anonID, phase)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return &model.PhaseStatus{Completed: false}, nil
	}
	completedAt := existing.CompletedAt
	return &model.PhaseStatus{Completed: true, CompletedAt: &completedAt}, nil
}

// SubmitRequest is one phase's questionnaire submission
type SubmitRequest struct {
	AnonID    string                   `json:"anonId"`
	Phase     string                   `json:"phase"`
	Version   string                   `json:"version"`
	Lang      string                   `json:"lang"`
	Answers   []model.AssessmentAnswer `json:"answers"`
	StartedAt time.Time                `json:"startedAt"`
}

// Submit stores a completed phase. Every answer key must exist in the active
// (version, lang) bank; values are clamped into the valid scale rather than
// rejected. A second submission for a completed phase returns
// ErrPhaseCompleted and leaves the stored answers untouched — the pre-check
// catches the common case and the unique index on (anonId, phase) settles
// concurrent races.
func (s *AssessmentService) Submit(ctx context.Context, req *SubmitRequest) (*model.Assessment, error) {
	if req.AnonID == "" {
		return nil, ErrMissingAnonID
	}
	if !model.ValidPhase(req.Phase) {
		return nil, ErrInvalidPhase
	}
	if len(req.Answers) == 0 {
		return nil, ErrEmptyAnswers
	}

	version := req.Version
	if version == "" {
		version = model.DefaultCASELVersion
	}
	lang := req.Lang
	if lang == "" {
		lang = model.LangEN
	}

	existing, err := s.assessmentRepo.FindByAnonAndPhase(ctx, req.AnonID, req.Phase)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPhaseCompleted
	}

	bank, err := s.questionSvc.SELQuestions(ctx, version, lang)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(bank))
	for _, q := range bank {
		known[q.Key] = true
	}

	answers := make([]model.AssessmentAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		if !known[a.QuestionKey] {
			return nil, ErrUnknownQuestionKey
		}
		answers = append(answers, model.AssessmentAnswer{
			QuestionKey: a.QuestionKey,
			Value:       clamp(a.Value, model.CASELScaleMin, model.CASELScaleMax),
		})
	}

	startedAt := req.StartedAt
	if startedAt.IsZero() {
		startedAt = s.now()
	}

	assessment := &model.Assessment{
		AnonID:      req.AnonID,
		Phase:       req.Phase,
		Version:     version,
		Lang:        lang,
		Answers:     answers,
		StartedAt:   startedAt,
		CompletedAt: s.now(),
	}

	if err := s.assessmentRepo.Create(ctx, assessment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPhaseCompleted
		}
		return nil, err
	}
	return assessment, nil
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
