package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"selstudy/internal/model"
	"selstudy/internal/repository"
)

// TranslationService memoizes UI-string translations. Entries are
// content-addressed by a digest of (sourceLang, targetLang, text); only cache
// misses reach the external service, in a single batched call.
type TranslationService struct {
	repo       repository.TranslationRepo
	translator Translator
}

// NewTranslationService creates a new translation service
func NewTranslationService(repo repository.TranslationRepo, translator Translator) *TranslationService {
	return &TranslationService{
		repo:       repo,
		translator: translator,
	}
}

// CacheKey computes the content-addressed key for one text
func CacheKey(sourceLang, targetLang, text string) string {
	sum := sha256.Sum256([]byte(sourceLang + "\x00" + targetLang + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

// TranslateBatch translates texts order-preservingly. Identical source and
// target language is a no-op.
func (s *TranslationService) TranslateBatch(ctx context.Context, sourceLang, targetLang string, texts []string) ([]string, error) {
	if len(texts) == 0 {
		return []string{}, nil
	}
	if sourceLang == targetLang {
		out := make([]string, len(texts))
		copy(out, texts)
		return out, nil
	}

	keys := make([]string, len(texts))
	for i, text := range texts {
		keys[i] = CacheKey(sourceLang, targetLang, text)
	}

	cached, err := s.repo.FindByKeys(ctx, keys)
	if err != nil {
		return nil, err
	}

	// Collect misses, deduplicated, in first-occurrence order
	var missTexts []string
	missIndex := make(map[string]int) // key -> position in missTexts
	for i, key := range keys {
		if _, ok := cached[key]; ok {
			continue
		}
		if _, ok := missIndex[key]; ok {
			continue
		}
		missIndex[key] = len(missTexts)
		missTexts = append(missTexts, texts[i])
	}

	var missResults []string
	if len(missTexts) > 0 {
		missResults, err = s.translator.Translate(ctx, sourceLang, targetLang, missTexts)
		if err != nil {
			return nil, err
		}

		entries := make([]*model.TranslationEntry, 0, len(missTexts))
		now := time.Now()
		for i, text := range missTexts {
			entries = append(entries, &model.TranslationEntry{
				Key:        CacheKey(sourceLang, targetLang, text),
				SourceLang: sourceLang,
				TargetLang: targetLang,
				Original:   text,
				Translated: missResults[i],
				CreatedAt:  now,
			})
		}
		if err := s.repo.InsertMany(ctx, entries); err != nil {
			return nil, err
		}
	}

	out := make([]string, len(texts))
	for i, key := range keys {
		if entry, ok := cached[key]; ok {
			out[i] = entry.Translated
		} else {
			out[i] = missResults[missIndex[key]]
		}
	}
	return out, nil
}
