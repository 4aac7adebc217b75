package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"selstudy/internal/model"
)

// TrialRepo handles MongoDB operations for trials
type TrialRepo interface {
	Create(ctx context.Context, trial *model.Trial) error
	FindByAnonID(ctx context.Context, anonID string) (*model.Trial, error)
	CountByGroup(ctx context.Context) (map[string]int, error)
	SetStartedAt(ctx context.Context, anonID string, at time.Time) error
	SetAnswerAndAnalysis(ctx context.Context, anonID, answer, analysisText string, analysis *model.SELAnalysis) error
	AppendChatMessages(ctx context.Context, anonID string, msgs []model.ChatMessage) error
	SetChatOutcome(ctx context.Context, anonID, summary string, recommendations []string, stats *model.ChatStats) error
	SetReflection(ctx context.Context, anonID string, reflection *model.Reflection) error
	SetEndedAt(ctx context.Context, anonID string, at time.Time) error
}

type trialRepo struct {
	collection *mongo.Collection
}

// NewTrialRepo creates a new trial repository
func NewTrialRepo(db *mongo.Database) TrialRepo {
	return &trialRepo{
		collection: db.Collection("trials"),
	}
}

func (r *trialRepo) Create(ctx context.Context, trial *model.Trial) error {
	if trial.AssignedAt.IsZero() {
		trial.AssignedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, trial)
	if err != nil {
		return translateErr(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		trial.ID = oid.Hex()
	}
	return nil
}

func (r *trialRepo) FindByAnonID(ctx context.Context, anonID string) (*model.Trial, error) {
	var trial model.Trial
	err := r.collection.FindOne(ctx, bson.M{"anonId": anonID}).Decode(&trial)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &trial, nil
}

func (r *trialRepo) CountByGroup(ctx context.Context) (map[string]int, error) {
	cursor, err := r.collection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$group", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Group string `bson:"_id"`
		Count int    `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(model.Groups))
	for _, g := range model.Groups {
		counts[g] = 0
	}
	for _, row := range rows {
		counts[row.Group] = row.Count
	}
	return counts, nil
}

// SetStartedAt stamps startedAt once; repeat start signals match no document
// and are treated as no-ops.
func (r *trialRepo) SetStartedAt(ctx context.Context, anonID string, at time.Time) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"anonId": anonID, "startedAt": nil},
		bson.M{"$set": bson.M{"startedAt": at}})
	return err
}

func (r *trialRepo) SetAnswerAndAnalysis(ctx context.Context, anonID, answer, analysisText string, analysis *model.SELAnalysis) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"anonId": anonID},
		bson.M{"$set": bson.M{
			"answer":       answer,
			"analysisText": analysisText,
			"analysis":     analysis,
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *trialRepo) AppendChatMessages(ctx context.Context, anonID string, msgs []model.ChatMessage) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"anonId": anonID},
		bson.M{"$push": bson.M{"chatTranscript": bson.M{"$each": msgs}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *trialRepo) SetChatOutcome(ctx context.Context, anonID, summary string, recommendations []string, stats *model.ChatStats) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"anonId": anonID},
		bson.M{"$set": bson.M{
			"chatSummary":         summary,
			"chatRecommendations": recommendations,
			"chatStats":           stats,
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *trialRepo) SetReflection(ctx context.Context, anonID string, reflection *model.Reflection) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"anonId": anonID},
		bson.M{"$set": bson.M{"reflection": reflection}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetEndedAt stamps endedAt once, first write wins
func (r *trialRepo) SetEndedAt(ctx context.Context, anonID string, at time.Time) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"anonId": anonID, "endedAt": nil},
		bson.M{"$set": bson.M{"endedAt": at}})
	return err
}
