package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"selstudy/internal/model"
)

// UEQRepo handles MongoDB operations for UEQ assessments
type UEQRepo interface {
	Create(ctx context.Context, a *model.UEQAssessment) error
	ListByAnonID(ctx context.Context, anonID string) ([]*model.UEQAssessment, error)
}

type ueqRepo struct {
	collection *mongo.Collection
}

// NewUEQRepo creates a new UEQ assessment repository
func NewUEQRepo(db *mongo.Database) UEQRepo {
	return &ueqRepo{
		collection: db.Collection("ueq_assessments"),
	}
}

func (r *ueqRepo) Create(ctx context.Context, a *model.UEQAssessment) error {
	result, err := r.collection.InsertOne(ctx, a)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid.Hex()
	}
	return nil
}

func (r *ueqRepo) ListByAnonID(ctx context.Context, anonID string) ([]*model.UEQAssessment, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"anonId": anonID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assessments []*model.UEQAssessment
	if err := cursor.All(ctx, &assessments); err != nil {
		return nil, err
	}
	return assessments, nil
}
