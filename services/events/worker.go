package events

import (
	"context"
	"encoding/json"
	"time"

	"slotify/config"
	"slotify/models"
	"slotify/services/notifier"
	"slotify/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// EarningsRecomputer is the provider balance collaborator: it re-derives
// a provider's earnings after an appointment completes.
type EarningsRecomputer interface {
	Recompute(ctx context.Context, providerID, appointmentID string) error
}

// LogRecomputer stands in when no balance backend is wired up.
type LogRecomputer struct{}

func (r *LogRecomputer) Recompute(_ context.Context, providerID, appointmentID string) error {
	utils.GetLogger().Info("earnings recompute requested",
		zap.String("providerID", providerID), zap.String("appointmentID", appointmentID))
	return nil
}

func queueRedisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewQueueClient returns the asynq client producers enqueue through.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(queueRedisOpts())
}

// InitEventWorker runs the async event worker in background.
func InitEventWorker(dispatcher notifier.Dispatcher, recomputer EarningsRecomputer) {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		queueRedisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeNotifyBooking, handleBookingEvent(dispatcher))
	mux.HandleFunc(TypeRecomputeEarnings, handleEarningsEvent(recomputer))

	go func() {
		logger.Info("starting event worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("event worker failed to start",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("event worker exhausted start attempts")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleBookingEvent(dispatcher notifier.Dispatcher) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var event models.BookingEvent
		if err := json.Unmarshal(task.Payload(), &event); err != nil {
			utils.GetLogger().Error("invalid booking event payload", zap.Error(err))
			return err
		}

		if err := dispatcher.Send(ctx, event.Type, task.Payload()); err != nil {
			utils.GetLogger().Error("failed to dispatch booking event",
				zap.String("eventID", event.ID), zap.Error(err))
			return err
		}
		return nil
	}
}

func handleEarningsEvent(recomputer EarningsRecomputer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var event models.EarningsEvent
		if err := json.Unmarshal(task.Payload(), &event); err != nil {
			utils.GetLogger().Error("invalid earnings event payload", zap.Error(err))
			return err
		}
		return recomputer.Recompute(ctx, event.ProviderID, event.AppointmentID)
	}
}
