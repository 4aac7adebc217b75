package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selstudy/internal/model"
	"selstudy/internal/repository"
)

type memParticipantRepo struct {
	participants map[string]*model.Participant
}

func newMemParticipantRepo() *memParticipantRepo {
	return &memParticipantRepo{participants: map[string]*model.Participant{}}
}

func (r *memParticipantRepo) Create(ctx context.Context, p *model.Participant) error {
	cp := *p
	r.participants[p.AnonID] = &cp
	return nil
}

func (r *memParticipantRepo) FindByAnonID(ctx context.Context, anonID string) (*model.Participant, error) {
	if p, ok := r.participants[anonID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *memParticipantRepo) SetDemographics(ctx context.Context, anonID string, d model.Demographics) error {
	p, ok := r.participants[anonID]
	if !ok {
		return repository.ErrNotFound
	}
	p.Demographics = d
	return nil
}

func (r *memParticipantRepo) TouchLastSeen(ctx context.Context, anonID string, at time.Time) error {
	p, ok := r.participants[anonID]
	if !ok {
		return repository.ErrNotFound
	}
	p.LastSeenAt = at
	return nil
}

func TestParticipantRegister(t *testing.T) {
	repo := newMemParticipantRepo()
	svc := NewParticipantService(repo)
	svc.newID = func() string { return "fixed-id" }
	svc.now = func() time.Time { return time.Unix(100, 0) }

	p, err := svc.Register(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", p.AnonID)
	assert.Equal(t, time.Unix(100, 0), p.CreatedAt)
	assert.NotNil(t, repo.participants["fixed-id"])
}

func TestParticipantSessionSummary(t *testing.T) {
	repo := newMemParticipantRepo()
	svc := NewParticipantService(repo)
	svc.newID = func() string { return "anon-1" }
	svc.now = func() time.Time { return time.Unix(100, 0) }
	ctx := context.Background()

	_, err := svc.Register(ctx)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Unix(160, 0) }
	require.NoError(t, svc.TouchLastSeen(ctx, "anon-1"))

	summary, err := svc.SessionSummary(ctx, "anon-1")
	require.NoError(t, err)
	assert.Equal(t, int64(60), summary.DurationSeconds)
}

func TestParticipantDemographics(t *testing.T) {
	repo := newMemParticipantRepo()
	svc := NewParticipantService(repo)
	svc.newID = func() string { return "anon-1" }
	ctx := context.Background()

	_, err := svc.Register(ctx)
	require.NoError(t, err)

	d := model.Demographics{Gender: "female", AgeRange: "18-24"}
	require.NoError(t, svc.SetDemographics(ctx, "anon-1", d))
	assert.Equal(t, d, repo.participants["anon-1"].Demographics)

	err = svc.SetDemographics(ctx, "missing", d)
	assert.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestParticipantValidation(t *testing.T) {
	svc := NewParticipantService(newMemParticipantRepo())
	ctx := context.Background()

	assert.ErrorIs(t, svc.SetDemographics(ctx, "", model.Demographics{}), ErrMissingAnonID)
	assert.ErrorIs(t, svc.TouchLastSeen(ctx, ""), ErrMissingAnonID)
	_, err := svc.SessionSummary(ctx, "missing")
	assert.ErrorIs(t, err, ErrParticipantNotFound)
}
