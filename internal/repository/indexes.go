package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique indexes the services rely on. Safe to run
// on every startup; Mongo treats existing identical indexes as a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{"participants", mongo.IndexModel{Keys: bson.D{{Key: "anonId", Value: 1}}, Options: unique}},
		{"trials", mongo.IndexModel{Keys: bson.D{{Key: "anonId", Value: 1}}, Options: unique}},
		{"assessments", mongo.IndexModel{Keys: bson.D{{Key: "anonId", Value: 1}, {Key: "phase", Value: 1}}, Options: unique}},
		{"sel_questions", mongo.IndexModel{Keys: bson.D{{Key: "version", Value: 1}, {Key: "lang", Value: 1}, {Key: "key", Value: 1}}, Options: unique}},
		{"ueq_items", mongo.IndexModel{Keys: bson.D{{Key: "version", Value: 1}, {Key: "lang", Value: 1}, {Key: "key", Value: 1}}, Options: unique}},
		{"scenarios", mongo.IndexModel{Keys: bson.D{{Key: "scenarioId", Value: 1}, {Key: "lang", Value: 1}}, Options: unique}},
		{"translations", mongo.IndexModel{Keys: bson.D{{Key: "key", Value: 1}}, Options: unique}},
		{"classes", mongo.IndexModel{Keys: bson.D{{Key: "code", Value: 1}}, Options: unique}},
		// Non-unique lookup indexes
		{"ueq_assessments", mongo.IndexModel{Keys: bson.D{{Key: "anonId", Value: 1}}}},
		{"notifications", mongo.IndexModel{Keys: bson.D{{Key: "teacherId", Value: 1}, {Key: "createdAt", Value: -1}}}},
		{"student_submissions", mongo.IndexModel{Keys: bson.D{{Key: "classId", Value: 1}, {Key: "submittedAt", Value: -1}}}},
	}

	for _, idx := range indexes {
		if _, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model); err != nil {
			return err
		}
	}
	return nil
}
