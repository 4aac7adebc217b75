package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"selstudy/internal/model"
)

// AssessmentRepo handles MongoDB operations for CASEL assessments
type AssessmentRepo interface {
	Create(ctx context.Context, a *model.Assessment) error
	FindByAnonAndPhase(ctx context.Context, anonID, phase string) (*model.Assessment, error)
}

type assessmentRepo struct {
	collection *mongo.Collection
}

// NewAssessmentRepo creates a new assessment repository
func NewAssessmentRepo(db *mongo.Database) AssessmentRepo {
	return &assessmentRepo{
		collection: db.Collection("assessments"),
	}
}

// Create inserts a completed assessment. The unique index on (anonId, phase)
// makes this the atomic second line of defense against concurrent submits;
// the loser of a race gets ErrDuplicate.
func (r *assessmentRepo) Create(ctx context.Context, a *model.Assessment) error {
	result, err := r.collection.InsertOne(ctx, a)
	if err != nil {
		return translateErr(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid.Hex()
	}
	return nil
}

func (r *assessmentRepo) FindByAnonAndPhase(ctx context.Context, anonID, phase string) (*model.Assessment, error) {
	var a model.Assessment
	err := r.collection.FindOne(ctx, bson.M{"anonId": anonID, "phase": phase}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
