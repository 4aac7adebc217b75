package service

import (
	"context"
	"time"

	"selstudy/internal/model"
	"selstudy/internal/repository"
)

// UEQService handles UEQ-S usability questionnaire submissions. There is no
// per-participant uniqueness: a repeat submission creates a new record.
type UEQService struct {
	ueqRepo     repository.UEQRepo
	questionSvc *QuestionService

	now func() time.Time
}

// NewUEQService creates a new UEQ service
func NewUEQService(ueqRepo repository.UEQRepo, questionSvc *QuestionService) *UEQService {
	return &UEQService{
		ueqRepo:     ueqRepo,
		questionSvc: questionSvc,
		now:         time.Now,
	}
}

// UEQSubmitRequest is one UEQ-S submission
type UEQSubmitRequest struct {
	AnonID  string         `json:"anonId"`
	Version string         `json:"version"`
	Lang    string         `json:"lang"`
	Ratings map[string]int `json:"ratings"`
}

// Submit validates the ratings against the item bank, clamps them into the
// 1-7 scale, computes pragmatic/hedonic/overall means, and stores the record
func (s *UEQService) Submit(ctx context.Context, req *UEQSubmitRequest) (*model.UEQAssessment, error) {
	if req.AnonID == "" {
		return nil, ErrMissingAnonID
	}
	if len(req.Ratings) == 0 {
		return nil, ErrEmptyAnswers
	}

	version := req.Version
	if version == "" {
		version = model.DefaultUEQVersion
	}
	lang := req.Lang
	if lang == "" {
		lang = model.LangEN
	}

	bank, err := s.questionSvc.UEQItems(ctx, version, lang)
	if err != nil {
		return nil, err
	}
	pragmatic := make(map[string]bool, len(bank))
	known := make(map[string]bool, len(bank))
	for _, item := range bank {
		known[item.Key] = true
		pragmatic[item.Key] = item.Pragmatic
	}

	ratings := make(map[string]int, len(req.Ratings))
	var pragSum, pragN, hedSum, hedN int
	for key, value := range req.Ratings {
		if !known[key] {
			return nil, ErrUnknownQuestionKey
		}
		v := clamp(value, model.UEQScaleMin, model.UEQScaleMax)
		ratings[key] = v
		if pragmatic[key] {
			pragSum += v
			pragN++
		} else {
			hedSum += v
			hedN++
		}
	}

	scores := model.UEQScores{}
	if pragN > 0 {
		scores.Pragmatic = float64(pragSum) / float64(pragN)
	}
	if hedN > 0 {
		scores.Hedonic = float64(hedSum) / float64(hedN)
	}
	scores.Overall = float64(pragSum+hedSum) / float64(pragN+hedN)

	assessment := &model.UEQAssessment{
		AnonID:      req.AnonID,
		Version:     version,
		Lang:        lang,
		Ratings:     ratings,
		Scores:      scores,
		SubmittedAt: s.now(),
	}

	if err := s.ueqRepo.Create(ctx, assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}
