package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repository depends on. The unique
// slot-lock index backs the commit-time overlap guarantee.
func (repo *MongoAppointmentRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := repo.appointmentColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "provider_id", Value: 1},
				{Key: "date", Value: 1},
				{Key: "status", Value: 1},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}

	_, err = repo.lockColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "provider_id", Value: 1},
			{Key: "date", Value: 1},
			{Key: "start", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create slot lock index: %w", err)
	}
	return nil
}
