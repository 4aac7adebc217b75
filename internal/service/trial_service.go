package service

import (
	"context"
	"strings"
	"time"

	"selstudy/internal/cache"
	"selstudy/internal/model"
	"selstudy/internal/repository"
)

// TrialService drives the per-participant lifecycle:
// assigned -> started -> answered/analyzed -> (chatting -> chat-finished)? -> reflected.
// Chat state lives in the explicit session store; the full transcript is sent
// to the AI on every turn.
type TrialService struct {
	trialRepo    repository.TrialRepo
	scenarioRepo repository.ScenarioRepo
	chatCache    cache.ChatSessionCache
	ai           AIClient

	now func() time.Time
}

// NewTrialService creates a new trial service
func NewTrialService(trialRepo repository.TrialRepo, scenarioRepo repository.ScenarioRepo, chatCache cache.ChatSessionCache, ai AIClient) *TrialService {
	return &TrialService{
		trialRepo:    trialRepo,
		scenarioRepo: scenarioRepo,
		chatCache:    chatCache,
		ai:           ai,
		now:          time.Now,
	}
}

// Start stamps startedAt when the simulation view opens; repeat signals are
// no-ops (first write wins)
func (s *TrialService) Start(ctx context.Context, anonID string) error {
	if anonID == "" {
		return ErrMissingAnonID
	}

	trial, err := s.trialRepo.FindByAnonID(ctx, anonID)
	if err != nil {
		return err
	}
	if trial == nil {
		return ErrTrialNotFound
	}
	return s.trialRepo.SetStartedAt(ctx, anonID, s.now())
}

// SubmitAnswer stores the free-text answer and synchronously runs the AI
// analysis; the response is not complete until analysis returns
func (s *TrialService) SubmitAnswer(ctx context.Context, anonID, answer string) (*model.SELAnalysis, string, error) {
	if anonID == "" {
		return nil, "", ErrMissingAnonID
	}
	if strings.TrimSpace(answer) == "" {
		return nil, "", ErrEmptyAnswer
	}

	trial, err := s.trialRepo.FindByAnonID(ctx, anonID)
	if err != nil {
		return nil, "", err
	}
	if trial == nil {
		return nil, "", ErrTrialNotFound
	}

	scenario, err := s.scenarioFor(ctx, trial.ScenarioID)
	if err != nil {
		return nil, "", err
	}

	analysis, legacyText, err := s.ai.AnalyzeResponse(ctx, scenario.Situation, scenario.QuestionPrompt, answer)
	if err != nil {
		return nil, "", err
	}

	if err := s.trialRepo.SetAnswerAndAnalysis(ctx, anonID, answer, legacyText, analysis); err != nil {
		return nil, "", err
	}
	return analysis, legacyText, nil
}

// SendChatMessage runs one Socratic chat turn. Experimental groups only.
func (s *TrialService) SendChatMessage(ctx context.Context, anonID, text string) (*model.ChatMessage, error) {
	if anonID == "" {
		return nil, ErrMissingAnonID
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	trial, err := s.trialRepo.FindByAnonID(ctx, anonID)
	if err != nil {
		return nil, err
	}
	if trial == nil {
		return nil, ErrTrialNotFound
	}
	if trial.IsControl() {
		return nil, ErrChatNotAllowed
	}

	scenario, err := s.scenarioFor(ctx, trial.ScenarioID)
	if err != nil {
		return nil, err
	}

	userMsg := model.ChatMessage{
		Sender:    model.SenderParticipant,
		Text:      text,
		Timestamp: s.now(),
	}

	transcript, err := s.chatCache.Transcript(ctx, anonID)
	if err != nil {
		return nil, err
	}
	if len(transcript) == 0 && len(trial.ChatTranscript) > 0 {
		// Session expired mid-chat; rebuild it from the durable transcript
		if err := s.chatCache.Append(ctx, anonID, trial.ChatTranscript...); err != nil {
			return nil, err
		}
		transcript = trial.ChatTranscript
	}
	transcript = append(transcript, userMsg)

	reply, err := s.ai.ChatTurn(ctx, scenario.Situation, transcript)
	if err != nil {
		return nil, err
	}

	assistantMsg := model.ChatMessage{
		Sender:    model.SenderAssistant,
		Text:      reply,
		Timestamp: s.now(),
	}

	if err := s.chatCache.Append(ctx, anonID, userMsg, assistantMsg); err != nil {
		return nil, err
	}
	if err := s.trialRepo.AppendChatMessages(ctx, anonID, []model.ChatMessage{userMsg, assistantMsg}); err != nil {
		return nil, err
	}
	return &assistantMsg, nil
}

// FinishChat produces and stores the chat summary; the client may not advance
// until this succeeds
func (s *TrialService) FinishChat(ctx context.Context, anonID string) (*ChatOutcome, *model.ChatStats, error) {
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
	if trial.IsControl() {
		return nil, nil, ErrChatNotAllowed
	}

	scenario, err := s.scenarioFor(ctx, trial.ScenarioID)
	if err != nil {
		return nil, nil, err
	}

	transcript, err := s.chatCache.Transcript(ctx, anonID)
	if err != nil {
		return nil, nil, err
	}
	if len(transcript) == 0 {
		transcript = trial.ChatTranscript
	}

	outcome, err := s.ai.SummarizeChat(ctx, scenario.Situation, transcript)
	if err != nil {
		return nil, nil, err
	}

	stats := &model.ChatStats{MessageCount: len(transcript)}
	for _, msg := range transcript {
		if msg.Sender == model.SenderParticipant {
			stats.ParticipantMessageCount++
		}
	}

	if err := s.trialRepo.SetChatOutcome(ctx, anonID, outcome.Summary, outcome.Recommendations, stats); err != nil {
		return nil, nil, err
	}
	if err := s.chatCache.Clear(ctx, anonID); err != nil {
		return nil, nil, err
	}
	return outcome, stats, nil
}

// SubmitReflection stores the two required closing fields; terminal state for
// the experimental flow
func (s *TrialService) SubmitReflection(ctx context.Context, anonID, learned, wouldChange string) error {
	if anonID == "" {
		return ErrMissingAnonID
	}
	if strings.TrimSpace(learned) == "" || strings.TrimSpace(wouldChange) == "" {
		return ErrMissingReflection
	}

	trial, err := s.trialRepo.FindByAnonID(ctx, anonID)
	if err != nil {
		return err
	}
	if trial == nil {
		return ErrTrialNotFound
	}

	reflection := &model.Reflection{
		Learned:     learned,
		WouldChange: wouldChange,
		SubmittedAt: s.now(),
	}
	if err := s.trialRepo.SetReflection(ctx, anonID, reflection); err != nil {
		return err
	}
	return s.trialRepo.SetEndedAt(ctx, anonID, s.now())
}

// End stamps endedAt for the control flow, which skips reflection and ends
// at the UEQ questionnaire; first write wins. Experimental trials end at
// reflection, so End is a no-op for them even when the UEQ arrives first.
func (s *TrialService) End(ctx context.Context, anonID string) error {
	if anonID == "" {
		return ErrMissingAnonID
	}

	trial, err := s.trialRepo.FindByAnonID(ctx, anonID)
	if err != nil {
		return err
	}
	if trial == nil {
		return ErrTrialNotFound
	}
	if !trial.IsControl() {
		return nil
	}
	return s.trialRepo.SetEndedAt(ctx, anonID, s.now())
}

// scenarioFor loads the scenario for AI prompts, preferring English and
// falling back to any active variant
func (s *TrialService) scenarioFor(ctx context.Context, scenarioID string) (*model.Scenario, error) {
	scenario, err := s.scenarioRepo.FindVariant(ctx, scenarioID, model.LangEN)
	if err != nil {
		return nil, err
	}
	if scenario == nil || !scenario.Active {
		scenario, err = s.scenarioRepo.FindVariant(ctx, scenarioID, model.LangHE)
		if err != nil {
			return nil, err
		}
	}
	if scenario == nil || !scenario.Active {
		return nil, ErrScenarioContent
	}
	return scenario, nil
}
