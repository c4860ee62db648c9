package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inov8tr/placement-api/internal/model"
)

type TestRepo interface {
	Create(ctx context.Context, test *model.Test) error
	GetByID(ctx context.Context, id string) (*model.Test, error)
	GetByStudentID(ctx context.Context, studentID string) ([]*model.Test, error)
	Update(ctx context.Context, test *model.Test) error
}

type testRepo struct {
	collection *mongo.Collection
}

func NewTestRepo(db *mongo.Database) TestRepo {
	return &testRepo{collection: db.Collection("tests")}
}

func (r *testRepo) Create(ctx context.Context, test *model.Test) error {
	if test.ID == "" {
		test.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, test)
	return err
}

func (r *testRepo) GetByID(ctx context.Context, id string) (*model.Test, error) {
	var test model.Test
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&test)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &test, nil
}

func (r *testRepo) GetByStudentID(ctx context.Context, studentID string) ([]*model.Test, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"studentId": studentID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tests []*model.Test
	if err = cursor.All(ctx, &tests); err != nil {
		return nil, err
	}
	return tests, nil
}

func (r *testRepo) Update(ctx context.Context, test *model.Test) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": test.ID}, test)
	return err
}
