package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inov8tr/placement-api/internal/model"
)

type SectionRepo interface {
	CreateMany(ctx context.Context, sections []*model.TestSection) error
	GetByTest(ctx context.Context, testID string) ([]*model.TestSection, error)
	GetByTestAndSection(ctx context.Context, testID string, section model.Section) (*model.TestSection, error)
	Update(ctx context.Context, section *model.TestSection) error
}

type sectionRepo struct {
	collection *mongo.Collection
}

func NewSectionRepo(db *mongo.Database) SectionRepo {
	return &sectionRepo{collection: db.Collection("test_sections")}
}

func (r *sectionRepo) CreateMany(ctx context.Context, sections []*model.TestSection) error {
	docs := make([]interface{}, 0, len(sections))
	for _, s := range sections {
		if s.ID == "" {
			s.ID = primitive.NewObjectID().Hex()
		}
		docs = append(docs, s)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// GetByTest returns the test's section rows in administration order.
func (r *sectionRepo) GetByTest(ctx context.Context, testID string) ([]*model.TestSection, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"testId": testID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sections []*model.TestSection
	if err = cursor.All(ctx, &sections); err != nil {
		return nil, err
	}

	byName := make(map[model.Section]*model.TestSection, len(sections))
	for _, s := range sections {
		byName[s.Section] = s
	}
	ordered := make([]*model.TestSection, 0, len(sections))
	for _, name := range model.SectionOrder {
		if s, ok := byName[name]; ok {
			ordered = append(ordered, s)
		}
	}
	return ordered, nil
}

func (r *sectionRepo) GetByTestAndSection(ctx context.Context, testID string, section model.Section) (*model.TestSection, error) {
	var sec model.TestSection
	err := r.collection.FindOne(ctx, bson.M{"testId": testID, "section": section}).Decode(&sec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &sec, nil
}

func (r *sectionRepo) Update(ctx context.Context, section *model.TestSection) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": section.ID}, section)
	return err
}
