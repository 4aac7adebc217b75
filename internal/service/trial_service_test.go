package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selstudy/internal/model"
)

func newTrialFixture(group string) (*TrialService, *memTrialRepo, *memChatCache, *fakeAI) {
	trials := newMemTrialRepo()
	scenarios := newMemScenarioRepo()
	scenarios.addAllScenarios()
	chatCache := newMemChatCache()
	ai := newFakeAI()

	trials.trials["anon-1"] = &model.Trial{
		AnonID:     "anon-1",
		Group:      group,
		GroupType:  model.GroupTypeFor(group),
		ScenarioID: model.GroupScenarios[group],
	}

	svc := NewTrialService(trials, scenarios, chatCache, ai)
	svc.now = func() time.Time { return time.Unix(4000, 0) }
	return svc, trials, chatCache, ai
}

func TestTrialStartFirstWriteWins(t *testing.T) {
	svc, trials, _, _ := newTrialFixture(model.GroupA)
	ctx := context.Background()

	require.NoError(t, svc.Start(ctx, "anon-1"))
	first := trials.trials["anon-1"].StartedAt
	require.NotNil(t, first)

	svc.now = func() time.Time { return time.Unix(9999, 0) }
	require.NoError(t, svc.Start(ctx, "anon-1"))
	assert.Equal(t, first, trials.trials["anon-1"].StartedAt)
}

func TestTrialSubmitAnswerStoresAnalysis(t *testing.T) {
	svc, trials, _, ai := newTrialFixture(model.GroupA)

	analysis, legacyText, err := svc.SubmitAnswer(context.Background(), "anon-1", "I would sit with them")
	require.NoError(t, err)
	assert.Equal(t, 1, ai.analyzeCalls)
	assert.Equal(t, "solid response", legacyText)

	stored := trials.trials["anon-1"]
	assert.Equal(t, "I would sit with them", stored.Answer)
	assert.Equal(t, analysis, stored.Analysis)
	assert.Equal(t, legacyText, stored.AnalysisText)
}

func TestTrialSubmitAnswerValidation(t *testing.T) {
	svc, _, _, _ := newTrialFixture(model.GroupA)
	ctx := context.Background()

	_, _, err := svc.SubmitAnswer(ctx, "anon-1", "   ")
	assert.ErrorIs(t, err, ErrEmptyAnswer)

	_, _, err = svc.SubmitAnswer(ctx, "missing", "answer")
	assert.ErrorIs(t, err, ErrTrialNotFound)
}

func TestChatControlGroupRejected(t *testing.T) {
	svc, _, _, _ := newTrialFixture(model.GroupD)
	ctx := context.Background()

	_, err := svc.SendChatMessage(ctx, "anon-1", "hello")
	assert.ErrorIs(t, err, ErrChatNotAllowed)

	_, _, err = svc.FinishChat(ctx, "anon-1")
	assert.ErrorIs(t, err, ErrChatNotAllowed)
}

func TestChatTurnAppendsBothSides(t *testing.T) {
	svc, trials, chatCache, ai := newTrialFixture(model.GroupA)

	reply, err := svc.SendChatMessage(context.Background(), "anon-1", "I think she was sad")
	require.NoError(t, err)
	assert.Equal(t, model.SenderAssistant, reply.Sender)
	assert.Equal(t, "What do you think they felt?", reply.Text)

	// The AI saw the transcript including the new user message
	require.Len(t, ai.seenTranscripts, 1)
	require.Len(t, ai.seenTranscripts[0], 1)
	assert.Equal(t, model.SenderParticipant, ai.seenTranscripts[0][0].Sender)

	// Both the session store and the durable transcript got the pair
	session, _ := chatCache.Transcript(context.Background(), "anon-1")
	assert.Len(t, session, 2)
	assert.Len(t, trials.trials["anon-1"].ChatTranscript, 2)
}

func TestChatSessionRebuiltAfterExpiry(t *testing.T) {
	svc, trials, chatCache, ai := newTrialFixture(model.GroupA)
	ctx := context.Background()

	// Durable transcript survives; the session store lost its entry
	trials.trials["anon-1"].ChatTranscript = []model.ChatMessage{
		{Sender: model.SenderParticipant, Text: "first"},
		{Sender: model.SenderAssistant, Text: "reply"},
	}

	_, err := svc.SendChatMessage(ctx, "anon-1", "second")
	require.NoError(t, err)

	// The AI call carried the rebuilt history plus the new message
	require.Len(t, ai.seenTranscripts, 1)
	assert.Len(t, ai.seenTranscripts[0], 3)

	session, _ := chatCache.Transcript(ctx, "anon-1")
	assert.Len(t, session, 4)
}

func TestFinishChatSummarizesAndClears(t *testing.T) {
	svc, trials, chatCache, _ := newTrialFixture(model.GroupA)
	ctx := context.Background()

	_, err := svc.SendChatMessage(ctx, "anon-1", "one")
	require.NoError(t, err)
	_, err = svc.SendChatMessage(ctx, "anon-1", "two")
	require.NoError(t, err)

	outcome, stats, err := svc.FinishChat(ctx, "anon-1")
	require.NoError(t, err)
	assert.Equal(t, "explored empathy", outcome.Summary)
	assert.Equal(t, 4, stats.MessageCount)
	assert.Equal(t, 2, stats.ParticipantMessageCount)

	stored := trials.trials["anon-1"]
	assert.Equal(t, outcome.Summary, stored.ChatSummary)
	assert.Equal(t, stats, stored.ChatStats)

	session, _ := chatCache.Transcript(ctx, "anon-1")
	assert.Empty(t, session)
}

func TestReflectionRequiresBothFields(t *testing.T) {
	svc, _, _, _ := newTrialFixture(model.GroupA)
	ctx := context.Background()

	assert.ErrorIs(t, svc.SubmitReflection(ctx, "anon-1", "", "change"), ErrMissingReflection)
	assert.ErrorIs(t, svc.SubmitReflection(ctx, "anon-1", "learned", "  "), ErrMissingReflection)
}

func TestReflectionEndsTrial(t *testing.T) {
	svc, trials, _, _ := newTrialFixture(model.GroupA)

	err := svc.SubmitReflection(context.Background(), "anon-1", "to listen first", "ask before judging")
	require.NoError(t, err)

	stored := trials.trials["anon-1"]
	require.NotNil(t, stored.Reflection)
	assert.Equal(t, "to listen first", stored.Reflection.Learned)
	require.NotNil(t, stored.EndedAt)
}

func TestEndFirstWriteWins(t *testing.T) {
	svc, trials, _, _ := newTrialFixture(model.GroupD)
	ctx := context.Background()

	require.NoError(t, svc.End(ctx, "anon-1"))
	first := trials.trials["anon-1"].EndedAt
	require.NotNil(t, first)

	svc.now = func() time.Time { return time.Unix(9999, 0) }
	require.NoError(t, svc.End(ctx, "anon-1"))
	assert.Equal(t, first, trials.trials["anon-1"].EndedAt)
}

func TestEndSkipsExperimentalTrials(t *testing.T) {
	svc, trials, _, _ := newTrialFixture(model.GroupA)
	ctx := context.Background()

	// A UEQ submitted before the reflection must not freeze the end time
	require.NoError(t, svc.End(ctx, "anon-1"))
	assert.Nil(t, trials.trials["anon-1"].EndedAt)

	require.NoError(t, svc.SubmitReflection(ctx, "anon-1", "to listen first", "ask before judging"))
	require.NotNil(t, trials.trials["anon-1"].EndedAt)
}

func TestEndUnknownTrial(t *testing.T) {
	svc, _, _, _ := newTrialFixture(model.GroupD)

	err := svc.End(context.Background(), "anon-missing")
	assert.ErrorIs(t, err, ErrTrialNotFound)
}

func TestChatAIErrorPropagates(t *testing.T) {
	svc, trials, chatCache, ai := newTrialFixture(model.GroupA)
	ai.err = ErrAITimeout

	_, err := svc.SendChatMessage(context.Background(), "anon-1", "hello")
	assert.ErrorIs(t, err, ErrAITimeout)

	// Nothing was persisted for the failed turn
	session, _ := chatCache.Transcript(context.Background(), "anon-1")
	assert.Empty(t, session)
	assert.Empty(t, trials.trials["anon-1"].ChatTranscript)
}
