package service

import (
	"context"
	"log"

	"selstudy/internal/cache"
	"selstudy/internal/model"
	"selstudy/internal/repository"
)

// QuestionService serves the seeded question banks through a read-through
// cache. Bank content is immutable per version so cache staleness only
// matters after re-seeding.
type QuestionService struct {
	questionRepo repository.QuestionRepo
	bankCache    cache.BankCache
}

// NewQuestionService creates a new question bank service
func NewQuestionService(questionRepo repository.QuestionRepo, bankCache cache.BankCache) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		bankCache:    bankCache,
	}
}

// SELQuestions returns the CASEL bank for (version, lang)
func (s *QuestionService) SELQuestions(ctx context.Context, version, lang string) ([]*model.SELQuestion, error) {
	if s.bankCache != nil {
		questions, err := s.bankCache.GetSELQuestions(ctx, version, lang)
		if err != nil {
			log.Printf("bank cache read failed: %v", err)
		} else if questions != nil {
			return questions, nil
		}
	}

	questions, err := s.questionRepo.ListSELQuestions(ctx, version, lang)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrBankNotFound
	}

	if s.bankCache != nil {
		if err := s.bankCache.SetSELQuestions(ctx, version, lang, questions); err != nil {
			log.Printf("bank cache write failed: %v", err)
		}
	}
	return questions, nil
}

// UEQItems returns the UEQ-S item bank for (version, lang)
func (s *QuestionService) UEQItems(ctx context.Context, version, lang string) ([]*model.UEQItem, error) {
	if s.bankCache != nil {
		items, err := s.bankCache.GetUEQItems(ctx, version, lang)
		if err != nil {
			log.Printf("bank cache read failed: %v", err)
		} else if items != nil {
			return items, nil
		}
	}

	items, err := s.questionRepo.ListUEQItems(ctx, version, lang)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrBankNotFound
	}

	if s.bankCache != nil {
		if err := s.bankCache.SetUEQItems(ctx, version, lang, items); err != nil {
			log.Printf("bank cache write failed: %v", err)
		}
	}
	return items, nil
}
