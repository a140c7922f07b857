package events

import (
	"encoding/json"

	"slotify/models"

	"github.com/hibiken/asynq"
)

// Task types routed through the asynq queue.
const (
	TypeNotifyBooking     = "booking:notify"
	TypeRecomputeEarnings = "provider:recompute_earnings"
)

// NewBookingEventTask wraps a booking event for the notification queue.
func NewBookingEventTask(event models.BookingEvent) (*asynq.Task, error) {
	b, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNotifyBooking, b, asynq.MaxRetry(5)), nil
}

// NewEarningsTask wraps an earnings recompute trigger.
func NewEarningsTask(event models.EarningsEvent) (*asynq.Task, error) {
	b, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRecomputeEarnings, b, asynq.MaxRetry(5)), nil
}
