package scheduling

import (
	"context"

	"slotify/models"
	"slotify/utils"

	"go.uber.org/zap"
)

func (e *DefaultEngine) UpdateAppointmentStatus(ctx context.Context, appointmentID, status, paymentStatus string) (*models.Appointment, error) {
	if appointmentID == "" {
		return nil, validationError("appointment id is required")
	}
	if !models.IsValidStatus(status) {
		return nil, validationError("unknown status %q", status)
	}
	if paymentStatus != "" && !models.IsValidPaymentStatus(paymentStatus) {
		return nil, validationError("unknown payment status %q", paymentStatus)
	}

	current, err := e.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !models.CanTransitionStatus(current.Status, status) {
		return nil, validationError("cannot transition appointment from %s to %s", current.Status, status)
	}

	// The update is conditional on the status we just validated against;
	// a transition that raced us in surfaces as ErrStaleStatus instead of
	// silently overwriting it.
	updated, err := e.Appointments.UpdateStatus(ctx, appointmentID, current.Status, status, paymentStatus)
	if err != nil {
		return nil, err
	}

	// An appointment leaving the pending/confirmed set stops occupying
	// calendar time; its slot locks must not block future bookings.
	if !updated.Blocks() {
		if err := e.Appointments.ReleaseLocks(ctx, appointmentID); err != nil {
			utils.GetLogger().Error("failed to release slot locks",
				zap.String("appointmentID", appointmentID), zap.Error(err))
		}
	}

	previous := current.Status
	e.emit(func() { e.Events.StatusChanged(*updated, previous) })
	if updated.Status == models.StatusCompleted {
		e.emit(func() { e.Events.EarningsRecompute(*updated) })
	}
	return updated, nil
}
