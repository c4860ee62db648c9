package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inov8tr/placement-api/internal/model"
)

// ErrDuplicateResponse is returned when a response for the same question in
// the same test/section already exists.
var ErrDuplicateResponse = errors.New("response already recorded")

type ResponseRepo interface {
	Create(ctx context.Context, response *model.Response) error
	GetByTestAndSection(ctx context.Context, testID string, section model.Section) ([]*model.Response, error)
	AnsweredIDs(ctx context.Context, testID string, section model.Section) (map[string]bool, error)
	EnsureIndexes(ctx context.Context) error
}

type responseRepo struct {
	collection *mongo.Collection
}

func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{collection: db.Collection("responses")}
}

// EnsureIndexes creates the unique index that makes duplicate submissions
// for the same question a no-op instead of a double count.
func (r *responseRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "testId", Value: 1}, {Key: "section", Value: 1}, {Key: "questionId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *responseRepo) Create(ctx context.Context, response *model.Response) error {
	if response.ID == "" {
		response.ID = primitive.NewObjectID().Hex()
	}
	if response.AnsweredAt.IsZero() {
		response.AnsweredAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, response)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateResponse
	}
	return err
}

func (r *responseRepo) GetByTestAndSection(ctx context.Context, testID string, section model.Section) ([]*model.Response, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"testId": testID, "section": section})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.Response
	if err = cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

// AnsweredIDs returns the set of question ids already answered in this
// test/section, the shape the selector consumes.
func (r *responseRepo) AnsweredIDs(ctx context.Context, testID string, section model.Section) (map[string]bool, error) {
	responses, err := r.GetByTestAndSection(ctx, testID, section)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(responses))
	for _, resp := range responses {
		ids[resp.QuestionID] = true
	}
	return ids, nil
}
