package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"selstudy/internal/model"
	"selstudy/internal/repository"
)

// ParticipantService mints anonymous identities and tracks session liveness.
// The anonId is the sole identity key in the system; no cookies or sessions.
type ParticipantService struct {
	participantRepo repository.ParticipantRepo

	newID func() string
	now   func() time.Time
}

// NewParticipantService creates a new participant service
func NewParticipantService(participantRepo repository.ParticipantRepo) *ParticipantService {
	return &ParticipantService{
		participantRepo: participantRepo,
		newID:           func() string { return uuid.New().String() },
		now:             time.Now,
	}
}

// Register mints a new anonymous participant
func (s *ParticipantService) Register(ctx context.Context) (*model.Participant, error) {
	p := &model.Participant{
		AnonID:     s.newID(),
		CreatedAt:  s.now(),
		LastSeenAt: s.now(),
	}
	if err := s.participantRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SetDemographics attaches optional demographics to a participant
func (s *ParticipantService) SetDemographics(ctx context.Context, anonID string, d model.Demographics) error {
	if anonID == "" {
		return ErrMissingAnonID
	}
	if err := s.participantRepo.SetDemographics(ctx, anonID, d); err != nil {
		if err == repository.ErrNotFound {
			return ErrParticipantNotFound
		}
		return err
	}
	return nil
}

// TouchLastSeen records a heartbeat
func (s *ParticipantService) TouchLastSeen(ctx context.Context, anonID string) error {
	if anonID == "" {
		return ErrMissingAnonID
	}
	if err := s.participantRepo.TouchLastSeen(ctx, anonID, s.now()); err != nil {
		if err == repository.ErrNotFound {
			return ErrParticipantNotFound
		}
		return err
	}
	return nil
}

// SessionSummary computes the session duration for the exit screen
func (s *ParticipantService) SessionSummary(ctx context.Context, anonID string) (*model.SessionSummary, error) {
	if anonID == "" {
		return nil, ErrMissingAnonID
	}

	p, err := s.participantRepo.FindByAnonID(ctx, anonID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrParticipantNotFound
	}

	return &model.SessionSummary{
		AnonID:          p.AnonID,
		StartedAt:       p.CreatedAt,
		LastSeenAt:      p.LastSeenAt,
		DurationSeconds: int64(p.LastSeenAt.Sub(p.CreatedAt).Seconds()),
	}, nil
}
