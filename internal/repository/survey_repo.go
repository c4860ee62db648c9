package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inov8tr/placement-api/internal/model"
)

type SurveyRepo interface {
	Create(ctx context.Context, survey *model.ParentSurvey) error
	LatestByStudent(ctx context.Context, studentID string) (*model.ParentSurvey, error)
	ListByStudent(ctx context.Context, studentID string) ([]*model.ParentSurvey, error)
}

type surveyRepo struct {
	collection *mongo.Collection
}

func NewSurveyRepo(db *mongo.Database) SurveyRepo {
	return &surveyRepo{collection: db.Collection("parent_surveys")}
}

func (r *surveyRepo) Create(ctx context.Context, survey *model.ParentSurvey) error {
	if survey.ID == "" {
		survey.ID = primitive.NewObjectID().Hex()
	}
	if survey.CreatedAt.IsZero() {
		survey.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, survey)
	return err
}

// LatestByStudent returns the most recent survey on file, or nil when the
// student has none.
func (r *surveyRepo) LatestByStudent(ctx context.Context, studentID string) (*model.ParentSurvey, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	var survey model.ParentSurvey
	err := r.collection.FindOne(ctx, bson.M{"studentId": studentID}, opts).Decode(&survey)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &survey, nil
}

func (r *surveyRepo) ListByStudent(ctx context.Context, studentID string) ([]*model.ParentSurvey, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"studentId": studentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var surveys []*model.ParentSurvey
	if err = cursor.All(ctx, &surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}
