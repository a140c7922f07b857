package events

import (
	"time"

	"slotify/models"
	"slotify/utils"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AsynqDispatcher pushes outbound booking events onto the Redis-backed
// queue. Enqueue failures are logged and swallowed: a lost event is
// recoverable, a rolled-back booking is not.
type AsynqDispatcher struct {
	Client *asynq.Client
}

func NewAsynqDispatcher(client *asynq.Client) *AsynqDispatcher {
	return &AsynqDispatcher{Client: client}
}

func (d *AsynqDispatcher) BookingCreated(appt models.Appointment) {
	d.enqueueBooking(bookingEvent(models.EventBookingCreated, appt, ""))
}

func (d *AsynqDispatcher) StatusChanged(appt models.Appointment, previousStatus string) {
	d.enqueueBooking(bookingEvent(models.EventStatusChanged, appt, previousStatus))
}

func (d *AsynqDispatcher) EarningsRecompute(appt models.Appointment) {
	task, err := NewEarningsTask(models.EarningsEvent{
		ID:            uuid.New().String(),
		ProviderID:    appt.ProviderID,
		AppointmentID: appt.ID,
		CreatedAt:     time.Now(),
	})
	if err != nil {
		utils.GetLogger().Error("failed to build earnings task",
			zap.String("appointmentID", appt.ID), zap.Error(err))
		return
	}
	d.enqueue(task)
}

func (d *AsynqDispatcher) enqueueBooking(event models.BookingEvent) {
	task, err := NewBookingEventTask(event)
	if err != nil {
		utils.GetLogger().Error("failed to build booking event task",
			zap.String("appointmentID", event.AppointmentID), zap.Error(err))
		return
	}
	d.enqueue(task)
}

func (d *AsynqDispatcher) enqueue(task *asynq.Task) {
	if _, err := d.Client.Enqueue(task); err != nil {
		utils.GetLogger().Error("failed to enqueue event task",
			zap.String("type", task.Type()), zap.Error(err))
	}
}

func bookingEvent(eventType string, appt models.Appointment, previousStatus string) models.BookingEvent {
	window := appt.Window()
	return models.BookingEvent{
		ID:             uuid.New().String(),
		Type:           eventType,
		AppointmentID:  appt.ID,
		ProviderID:     appt.ProviderID,
		ClientID:       appt.ClientID,
		Date:           appt.Date,
		Start:          window.Start,
		End:            window.End,
		Status:         appt.Status,
		PreviousStatus: previousStatus,
		CreatedAt:      time.Now(),
	}
}
