package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"selstudy/internal/model"
)

// QuestionRepo handles MongoDB operations for the CASEL and UEQ item banks
type QuestionRepo interface {
	ListSELQuestions(ctx context.Context, version, lang string) ([]*model.SELQuestion, error)
	UpsertSELQuestion(ctx context.Context, q *model.SELQuestion) error
	ListUEQItems(ctx context.Context, version, lang string) ([]*model.UEQItem, error)
	UpsertUEQItem(ctx context.Context, item *model.UEQItem) error
}

type questionRepo struct {
	selCollection *mongo.Collection
	ueqCollection *mongo.Collection
}

// NewQuestionRepo creates a new question bank repository
func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{
		selCollection: db.Collection("sel_questions"),
		ueqCollection: db.Collection("ueq_items"),
	}
}

func (r *questionRepo) ListSELQuestions(ctx context.Context, version, lang string) ([]*model.SELQuestion, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.selCollection.Find(ctx, bson.M{"version": version, "lang": lang}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []*model.SELQuestion
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// UpsertSELQuestion writes one bank item keyed on (version, lang, key), so
// re-running the seeder never duplicates content.
func (r *questionRepo) UpsertSELQuestion(ctx context.Context, q *model.SELQuestion) error {
	filter := bson.M{"version": q.Version, "lang": q.Lang, "key": q.Key}
	update := bson.M{"$set": bson.M{
		"category": q.Category,
		"text":     q.Text,
		"order":    q.Order,
		"options":  q.Options,
	}}
	opts := options.Update().SetUpsert(true)
	_, err := r.selCollection.UpdateOne(ctx, filter, update, opts)
	return err
}

func (r *questionRepo) ListUEQItems(ctx context.Context, version, lang string) ([]*model.UEQItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.ueqCollection.Find(ctx, bson.M{"version": version, "lang": lang}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []*model.UEQItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *questionRepo) UpsertUEQItem(ctx context.Context, item *model.UEQItem) error {
	filter := bson.M{"version": item.Version, "lang": item.Lang, "key": item.Key}
	update := bson.M{"$set": bson.M{
		"leftLabel":  item.LeftLabel,
		"rightLabel": item.RightLabel,
		"order":      item.Order,
		"pragmatic":  item.Pragmatic,
	}}
	opts := options.Update().SetUpsert(true)
	_, err := r.ueqCollection.UpdateOne(ctx, filter, update, opts)
	return err
}
