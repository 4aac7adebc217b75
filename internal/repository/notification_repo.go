package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"selstudy/internal/model"
)

// NotificationRepo handles MongoDB operations for teacher notifications
type NotificationRepo interface {
	Create(ctx context.Context, n *model.Notification) error
	FindByID(ctx context.Context, id string) (*model.Notification, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, teacherID string) (int64, error)
}

type notificationRepo struct {
	collection *mongo.Collection
}

// NewNotificationRepo creates a new notification repository
func NewNotificationRepo(db *mongo.Database) NotificationRepo {
	return &notificationRepo{
		collection: db.Collection("notifications"),
	}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, n)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		n.ID = oid.Hex()
	}
	return nil
}

func (r *notificationRepo) FindByID(ctx context.Context, id string) (*model.Notification, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var n model.Notification
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&n)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	n.ID = id
	return &n, nil
}

func (r *notificationRepo) ListByTeacher(ctx context.Context, teacherID string) ([]*model.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"teacherId": teacherID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []*model.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, teacherID string) (int64, error) {
	res, err := r.collection.UpdateMany(ctx,
		bson.M{"teacherId": teacherID, "read": false},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
