package providerRepo

import (
	"context"
	"fmt"
	"time"

	"slotify/database"
	"slotify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoProviderRepo is the production ProviderRepository.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo builds the repository on the global database.
func NewMongoProviderRepo() *MongoProviderRepo {
	return &MongoProviderRepo{coll: database.DB().Collection("providers")}
}

func (repo *MongoProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var provider models.Provider
	err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&provider)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider %s: %w", id, err)
	}
	return &provider, nil
}

func (repo *MongoProviderRepo) GetByServiceIDs(ctx context.Context, serviceIDs []string) ([]models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"services.id": bson.M{"$all": serviceIDs}}
	cur, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search providers by services: %w", err)
	}
	defer cur.Close(ctx)

	var providers []models.Provider
	if err := cur.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("failed to decode providers: %w", err)
	}
	return providers, nil
}
