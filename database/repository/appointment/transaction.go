package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"slotify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// slotLock reserves one step-grain minute offset of a provider's day.
// The unique index on (provider_id, date, start) is the last line of
// defense against overlap races the in-transaction re-check might miss.
type slotLock struct {
	ProviderID    string `bson:"provider_id"`
	Date          string `bson:"date"`
	Start         int    `bson:"start"`
	AppointmentID string `bson:"appointment_id"`
}

// lockGrain is the granularity of slot-lock documents in minutes.
const lockGrain = 5

// lockStarts returns the grain-aligned offsets a window must lock. The
// offsets are anchored to multiples of lockGrain, not to the window's
// own start, so any two overlapping windows contend for at least one
// lock document regardless of how their starts are aligned.
func lockStarts(window models.Interval) []int {
	aligned := window.Start - window.Start%lockGrain
	starts := make([]int, 0, (window.End-aligned+lockGrain-1)/lockGrain)
	for s := aligned; s < window.End; s += lockGrain {
		starts = append(starts, s)
	}
	return starts
}

func (repo *MongoAppointmentRepo) CreateTransactionally(ctx context.Context, appt *models.Appointment) error {
	client := repo.appointmentColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	window := appt.Window()

	txnFn := func(sc mongo.SessionContext) error {
		if !appt.Forced {
			// Re-check overlap against live state before inserting.
			filter := bson.M{
				"provider_id": appt.ProviderID,
				"date":        appt.Date,
				"status":      bson.M{"$in": bson.A{models.StatusPending, models.StatusConfirmed}},
				"segments": bson.M{"$elemMatch": bson.M{
					"start": bson.M{"$lt": window.End},
					"end":   bson.M{"$gt": window.Start},
				}},
			}
			n, err := repo.appointmentColl.CountDocuments(sc, filter)
			if err != nil {
				return fmt.Errorf("commit-time overlap check failed: %w", err)
			}
			if n > 0 {
				return ErrCommitConflict
			}
		}

		if _, err := repo.appointmentColl.InsertOne(sc, appt); err != nil {
			return fmt.Errorf("insert appointment failed: %w", err)
		}

		if !appt.Forced {
			starts := lockStarts(window)
			locks := make([]interface{}, 0, len(starts))
			for _, s := range starts {
				locks = append(locks, slotLock{
					ProviderID:    appt.ProviderID,
					Date:          appt.Date,
					Start:         s,
					AppointmentID: appt.ID,
				})
			}
			if _, err := repo.lockColl.InsertMany(sc, locks); err != nil {
				if mongo.IsDuplicateKeyError(err) {
					return ErrCommitConflict
				}
				return fmt.Errorf("insert slot locks failed: %w", err)
			}
		}

		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrCommitConflict {
			return err
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}

	return nil
}

// ReleaseLocks removes the slot locks held by an appointment. Called when
// an appointment leaves the pending/confirmed set so the window becomes
// bookable again.
func (repo *MongoAppointmentRepo) ReleaseLocks(ctx context.Context, appointmentID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.lockColl.DeleteMany(ctx, bson.M{"appointment_id": appointmentID}); err != nil {
		return fmt.Errorf("failed to release slot locks for %s: %w", appointmentID, err)
	}
	return nil
}
