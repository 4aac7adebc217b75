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

// ClassRepo handles MongoDB operations for classes and student submissions
type ClassRepo interface {
	Create(ctx context.Context, class *model.Class) error
	FindByID(ctx context.Context, id string) (*model.Class, error)
	FindByCode(ctx context.Context, code string) (*model.Class, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]*model.Class, error)
	CreateSubmission(ctx context.Context, sub *model.StudentSubmission) error
	ListSubmissions(ctx context.Context, classID string) ([]*model.StudentSubmission, error)
}

type classRepo struct {
	classes     *mongo.Collection
	submissions *mongo.Collection
}

// NewClassRepo creates a new class repository
func NewClassRepo(db *mongo.Database) ClassRepo {
	return &classRepo{
		classes:     db.Collection("classes"),
		submissions: db.Collection("student_submissions"),
	}
}

// Create inserts a class; the unique index on code turns duplicate class
// codes into ErrDuplicate.
func (r *classRepo) Create(ctx context.Context, class *model.Class) error {
	if class.CreatedAt.IsZero() {
		class.CreatedAt = time.Now()
	}

	result, err := r.classes.InsertOne(ctx, class)
	if err != nil {
		return translateErr(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		class.ID = oid.Hex()
	}
	return nil
}

func (r *classRepo) FindByID(ctx context.Context, id string) (*model.Class, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var class model.Class
	err = r.classes.FindOne(ctx, bson.M{"_id": oid}).Decode(&class)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	class.ID = id
	return &class, nil
}

func (r *classRepo) FindByCode(ctx context.Context, code string) (*model.Class, error) {
	var class model.Class
	err := r.classes.FindOne(ctx, bson.M{"code": code}).Decode(&class)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepo) ListByTeacher(ctx context.Context, teacherID string) ([]*model.Class, error) {
	cursor, err := r.classes.Find(ctx, bson.M{"teacherId": teacherID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var classes []*model.Class
	if err := cursor.All(ctx, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *classRepo) CreateSubmission(ctx context.Context, sub *model.StudentSubmission) error {
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now()
	}

	result, err := r.submissions.InsertOne(ctx, sub)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		sub.ID = oid.Hex()
	}
	return nil
}

func (r *classRepo) ListSubmissions(ctx context.Context, classID string) ([]*model.StudentSubmission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
	cursor, err := r.submissions.Find(ctx, bson.M{"classId": classID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []*model.StudentSubmission
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}
