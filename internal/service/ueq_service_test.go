package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selstudy/internal/model"
)

func newUEQFixture() (*UEQService, *memUEQRepo) {
	questions := newMemQuestionRepo()
	items := []struct {
		key       string
		pragmatic bool
	}{
		{"complicated_easy", true},
		{"inefficient_efficient", true},
		{"boring_exciting", false},
		{"conventional_inventive", false},
	}
	for i, item := range items {
		questions.UpsertUEQItem(context.Background(), &model.UEQItem{
			Version:   model.DefaultUEQVersion,
			Lang:      model.LangEN,
			Key:       item.key,
			Order:     i + 1,
			Pragmatic: item.pragmatic,
		})
	}

	ueqRepo := &memUEQRepo{}
	svc := NewUEQService(ueqRepo, NewQuestionService(questions, nil))
	svc.now = func() time.Time { return time.Unix(3000, 0) }
	return svc, ueqRepo
}

func TestUEQScores(t *testing.T) {
	svc, _ := newUEQFixture()

	a, err := svc.Submit(context.Background(), &UEQSubmitRequest{
		AnonID: "anon-1",
		Ratings: map[string]int{
			"complicated_easy":       6,
			"inefficient_efficient":  4,
			"boring_exciting":        7,
			"conventional_inventive": 3,
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 5.0, a.Scores.Pragmatic, 1e-9)
	assert.InDelta(t, 5.0, a.Scores.Hedonic, 1e-9)
	assert.InDelta(t, 5.0, a.Scores.Overall, 1e-9)
	assert.Equal(t, time.Unix(3000, 0), a.SubmittedAt)
}

func TestUEQClampsRatings(t *testing.T) {
	svc, _ := newUEQFixture()

	a, err := svc.Submit(context.Background(), &UEQSubmitRequest{
		AnonID: "anon-1",
		Ratings: map[string]int{
			"complicated_easy": 0,
			"boring_exciting":  9,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, model.UEQScaleMin, a.Ratings["complicated_easy"])
	assert.Equal(t, model.UEQScaleMax, a.Ratings["boring_exciting"])
	assert.InDelta(t, 1.0, a.Scores.Pragmatic, 1e-9)
	assert.InDelta(t, 7.0, a.Scores.Hedonic, 1e-9)
}

func TestUEQResubmissionAllowed(t *testing.T) {
	svc, ueqRepo := newUEQFixture()
	ctx := context.Background()

	req := &UEQSubmitRequest{
		AnonID:  "anon-1",
		Ratings: map[string]int{"complicated_easy": 5},
	}
	_, err := svc.Submit(ctx, req)
	require.NoError(t, err)
	_, err = svc.Submit(ctx, req)
	require.NoError(t, err)

	records, err := ueqRepo.ListByAnonID(ctx, "anon-1")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestUEQValidation(t *testing.T) {
	svc, _ := newUEQFixture()
	ctx := context.Background()

	_, err := svc.Submit(ctx, &UEQSubmitRequest{Ratings: map[string]int{"complicated_easy": 5}})
	assert.ErrorIs(t, err, ErrMissingAnonID)

	_, err = svc.Submit(ctx, &UEQSubmitRequest{AnonID: "anon-1"})
	assert.ErrorIs(t, err, ErrEmptyAnswers)

	_, err = svc.Submit(ctx, &UEQSubmitRequest{
		AnonID:  "anon-1",
		Ratings: map[string]int{"nope": 5},
	})
	assert.ErrorIs(t, err, ErrUnknownQuestionKey)
}
