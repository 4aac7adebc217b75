package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"selstudy/internal/model"
)

// ParticipantRepo handles MongoDB operations for anonymous participants
type ParticipantRepo interface {
	Create(ctx context.Context, p *model.Participant) error
	FindByAnonID(ctx context.Context, anonID string) (*model.Participant, error)
	SetDemographics(ctx context.Context, anonID string, d model.Demographics) error
	TouchLastSeen(ctx context.Context, anonID string, at time.Time) error
}

type participantRepo struct {
	collection *mongo.Collection
}

// NewParticipantRepo creates a new participant repository
func NewParticipantRepo(db *mongo.Database) ParticipantRepo {
	return &participantRepo{
		collection: db.Collection("participants"),
	}
}

func (r *participantRepo) Create(ctx context.Context, p *model.Participant) error {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.LastSeenAt.IsZero() {
		p.LastSeenAt = now
	}

	result, err := r.collection.InsertOne(ctx, p)
	if err != nil {
		return translateErr(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid.Hex()
	}
	return nil
}

func (r *participantRepo) FindByAnonID(ctx context.Context, anonID string) (*model.Participant, error) {
	var p model.Participant
	err := r.collection.FindOne(ctx, bson.M{"anonId": anonID}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *participantRepo) SetDemographics(ctx context.Context, anonID string, d model.Demographics) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"anonId": anonID},
		bson.M{"$set": bson.M{"demographics": d, "lastSeenAt": time.Now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *participantRepo) TouchLastSeen(ctx context.Context, anonID string, at time.Time) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"anonId": anonID},
		bson.M{"$set": bson.M{"lastSeenAt": at}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
