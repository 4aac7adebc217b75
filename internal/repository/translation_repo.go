package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"selstudy/internal/model"
)

// TranslationRepo handles MongoDB operations for the translation cache
type TranslationRepo interface {
	FindByKeys(ctx context.Context, keys []string) (map[string]*model.TranslationEntry, error)
	InsertMany(ctx context.Context, entries []*model.TranslationEntry) error
}

type translationRepo struct {
	collection *mongo.Collection
}

// NewTranslationRepo creates a new translation cache repository
func NewTranslationRepo(db *mongo.Database) TranslationRepo {
	return &translationRepo{
		collection: db.Collection("translations"),
	}
}

// FindByKeys looks up all cache keys in one batched read
func (r *translationRepo) FindByKeys(ctx context.Context, keys []string) (map[string]*model.TranslationEntry, error) {
	found := make(map[string]*model.TranslationEntry, len(keys))
	if len(keys) == 0 {
		return found, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"key": bson.M{"$in": keys}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*model.TranslationEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	for _, e := range entries {
		found[e.Key] = e
	}
	return found, nil
}

// InsertMany writes back freshly translated entries. Unordered so a duplicate
// key (another request cached the same text first) doesn't abort the batch;
// duplicates are not an error for an append-only memoization store.
func (r *translationRepo) InsertMany(ctx context.Context, entries []*model.TranslationEntry) error {
	if len(entries) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, e)
	}

	opts := options.InsertMany().SetOrdered(false)
	_, err := r.collection.InsertMany(ctx, docs, opts)
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}
