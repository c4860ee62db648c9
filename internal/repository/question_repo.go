package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inov8tr/placement-api/internal/model"
)

type QuestionRepo interface {
	Create(ctx context.Context, question *model.Question) error
	GetByID(ctx context.Context, id string) (*model.Question, error)
	Update(ctx context.Context, question *model.Question) error
	Delete(ctx context.Context, id string) error

	// Selector queries
	Questions(ctx context.Context, section model.Section, level int, sublevel string) ([]*model.Question, error)
	PassageQuestions(ctx context.Context, passageID string) ([]*model.Question, error)

	// Management
	GetBySection(ctx context.Context, section model.Section) ([]*model.Question, error)
}

type questionRepo struct {
	collection *mongo.Collection
}

func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{collection: db.Collection("questions")}
}

func (r *questionRepo) Create(ctx context.Context, question *model.Question) error {
	if question.ID == "" {
		question.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, question)
	return err
}

func (r *questionRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	var question model.Question
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

func (r *questionRepo) Update(ctx context.Context, question *model.Question) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": question.ID}, question)
	return err
}

func (r *questionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Questions returns the active items for one section at one level/sublevel.
func (r *questionRepo) Questions(ctx context.Context, section model.Section, level int, sublevel string) ([]*model.Question, error) {
	return r.find(ctx, bson.M{
		"section":  section,
		"level":    level,
		"sublevel": sublevel,
		"active":   true,
	})
}

// PassageQuestions returns all active items attached to one passage.
func (r *questionRepo) PassageQuestions(ctx context.Context, passageID string) ([]*model.Question, error) {
	return r.find(ctx, bson.M{"passageId": passageID, "active": true})
}

func (r *questionRepo) GetBySection(ctx context.Context, section model.Section) ([]*model.Question, error) {
	return r.find(ctx, bson.M{"section": section})
}

func (r *questionRepo) find(ctx context.Context, filter bson.M) ([]*model.Question, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []*model.Question
	if err = cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}
