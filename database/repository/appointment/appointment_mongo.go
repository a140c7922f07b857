package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"slotify/database"
	"slotify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepo is the production AppointmentRepository backed by
// the appointments and slot_locks collections.
type MongoAppointmentRepo struct {
	appointmentColl *mongo.Collection
	lockColl        *mongo.Collection
}

// NewMongoAppointmentRepo builds the repository on the global database.
func NewMongoAppointmentRepo() *MongoAppointmentRepo {
	db := database.DB()
	return &MongoAppointmentRepo{
		appointmentColl: db.Collection("appointments"),
		lockColl:        db.Collection("slot_locks"),
	}
}

func (repo *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	err := repo.appointmentColl.FindOne(ctx, bson.M{"id": id}).Decode(&appt)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment %s: %w", id, err)
	}
	return &appt, nil
}

func (repo *MongoAppointmentRepo) ListForDay(ctx context.Context, providerID, date string, statuses []string) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"provider_id": providerID, "date": date}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}

	opts := options.Find().SetSort(bson.D{{Key: "segments.0.start", Value: 1}})
	cur, err := repo.appointmentColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments for %s on %s: %w", providerID, date, err)
	}
	defer cur.Close(ctx)

	var appts []models.Appointment
	if err := cur.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}

func (repo *MongoAppointmentRepo) UpdateStatus(ctx context.Context, id, expectedStatus, status, paymentStatus string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"status": status, "updated_at": time.Now()}
	if paymentStatus != "" {
		set["payment_status"] = paymentStatus
	}

	// Matching on the expected status makes the transition atomic: a
	// concurrent transition that got there first leaves nothing to match.
	filter := bson.M{"id": id, "status": expectedStatus}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Appointment
	err := repo.appointmentColl.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		if cnt, cntErr := repo.appointmentColl.CountDocuments(ctx, bson.M{"id": id}); cntErr == nil && cnt > 0 {
			return nil, ErrStaleStatus
		}
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment %s status: %w", id, err)
	}
	return &updated, nil
}
