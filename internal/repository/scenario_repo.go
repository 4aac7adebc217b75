package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"selstudy/internal/model"
)

// ScenarioRepo handles MongoDB operations for scenario content
type ScenarioRepo interface {
	FindVariant(ctx context.Context, scenarioID, lang string) (*model.Scenario, error)
	FindVariants(ctx context.Context, scenarioID string) ([]*model.Scenario, error)
	Upsert(ctx context.Context, s *model.Scenario) error
}

type scenarioRepo struct {
	collection *mongo.Collection
}

// NewScenarioRepo creates a new scenario repository
func NewScenarioRepo(db *mongo.Database) ScenarioRepo {
	return &scenarioRepo{
		collection: db.Collection("scenarios"),
	}
}

func (r *scenarioRepo) FindVariant(ctx context.Context, scenarioID, lang string) (*model.Scenario, error) {
	var s model.Scenario
	err := r.collection.FindOne(ctx, bson.M{"scenarioId": scenarioID, "lang": lang}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *scenarioRepo) FindVariants(ctx context.Context, scenarioID string) ([]*model.Scenario, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"scenarioId": scenarioID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var scenarios []*model.Scenario
	if err := cursor.All(ctx, &scenarios); err != nil {
		return nil, err
	}
	return scenarios, nil
}

// Upsert writes one language variant keyed on (scenarioId, lang)
func (r *scenarioRepo) Upsert(ctx context.Context, s *model.Scenario) error {
	filter := bson.M{"scenarioId": s.ScenarioID, "lang": s.Lang}
	update := bson.M{"$set": bson.M{
		"title":             s.Title,
		"situation":         s.Situation,
		"questionPrompt":    s.QuestionPrompt,
		"reflectionPrompts": s.ReflectionPrompts,
		"selTags":           s.SELTags,
		"active":            s.Active,
	}}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}
