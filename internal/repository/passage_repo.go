package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inov8tr/placement-api/internal/model"
)

type PassageRepo interface {
	Create(ctx context.Context, passage *model.Passage) error
	GetByID(ctx context.Context, id string) (*model.Passage, error)
	Update(ctx context.Context, passage *model.Passage) error
	Delete(ctx context.Context, id string) error

	// Selector query
	Passages(ctx context.Context, section model.Section, level int, sublevel string) ([]*model.Passage, error)
}

type passageRepo struct {
	collection *mongo.Collection
}

func NewPassageRepo(db *mongo.Database) PassageRepo {
	return &passageRepo{collection: db.Collection("question_passages")}
}

func (r *passageRepo) Create(ctx context.Context, passage *model.Passage) error {
	if passage.ID == "" {
		passage.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, passage)
	return err
}

func (r *passageRepo) GetByID(ctx context.Context, id string) (*model.Passage, error) {
	var passage model.Passage
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&passage)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &passage, nil
}

func (r *passageRepo) Update(ctx context.Context, passage *model.Passage) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": passage.ID}, passage)
	return err
}

func (r *passageRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *passageRepo) Passages(ctx context.Context, section model.Section, level int, sublevel string) ([]*model.Passage, error) {
	cursor, err := r.collection.Find(ctx, bson.M{
		"section":  section,
		"level":    level,
		"sublevel": sublevel,
		"active":   true,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var passages []*model.Passage
	if err = cursor.All(ctx, &passages); err != nil {
		return nil, err
	}
	return passages, nil
}
