package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inov8tr/placement-api/internal/model"
)

type SeedRepo interface {
	Create(ctx context.Context, seed *model.PlacementSeed) error
	GetByTest(ctx context.Context, testID string) (*model.PlacementSeed, error)
}

type seedRepo struct {
	collection *mongo.Collection
}

func NewSeedRepo(db *mongo.Database) SeedRepo {
	return &seedRepo{collection: db.Collection("placement_seeds")}
}

func (r *seedRepo) Create(ctx context.Context, seed *model.PlacementSeed) error {
	if seed.ID == "" {
		seed.ID = primitive.NewObjectID().Hex()
	}
	if seed.CreatedAt.IsZero() {
		seed.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, seed)
	return err
}

func (r *seedRepo) GetByTest(ctx context.Context, testID string) (*model.PlacementSeed, error) {
	var seed model.PlacementSeed
	err := r.collection.FindOne(ctx, bson.M{"testId": testID}).Decode(&seed)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &seed, nil
}
