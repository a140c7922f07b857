package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	appointmentRepo "slotify/database/repository/appointment"
	"slotify/models"
	"slotify/utils"

	"go.uber.org/zap"
)

func (e *DefaultEngine) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Appointment, error) {
	if len(req.Services) != 1 {
		return nil, validationError("single booking requires exactly one service, got %d", len(req.Services))
	}
	return e.createAppointment(ctx, req)
}

func (e *DefaultEngine) CreateConsecutiveBooking(ctx context.Context, req models.BookingRequest) (*models.Appointment, error) {
	if len(req.Services) < 2 {
		return nil, validationError("consecutive booking requires at least two services, got %d", len(req.Services))
	}
	return e.createAppointment(ctx, req)
}

// createAppointment is the booking transaction creator: it validates the
// request, pre-checks every segment, then re-checks conflicts inside the
// same transaction that persists the appointment, closing the race
// between reading availability and writing the booking.
func (e *DefaultEngine) createAppointment(ctx context.Context, req models.BookingRequest) (*models.Appointment, error) {
	if err := validateBookingRequest(req); err != nil {
		return nil, err
	}

	day, err := time.Parse(models.DateLayout, req.Date)
	if err != nil {
		return nil, validationError("invalid date %q: expected %s", req.Date, models.DateLayout)
	}

	provider, err := e.Providers.GetByID(ctx, req.ProviderID)
	if err != nil {
		return nil, err
	}
	if err := provider.WorkingHours.Validate(); err != nil {
		return nil, fmt.Errorf("provider %s working hours: %w", provider.ID, err)
	}

	hours := provider.WorkingHours.IntervalsFor(day)
	appts, err := e.Appointments.ListForDay(ctx, req.ProviderID, req.Date,
		[]string{models.StatusPending, models.StatusConfirmed})
	if err != nil {
		return nil, err
	}

	segments := ComposeSegments(req.Services, req.Start)
	today := e.today(provider)
	if err := validateSegments(hours, appts, req.Date, today, segments, req.ForceOverride); err != nil {
		return nil, err
	}

	now := e.now()
	status, paymentStatus := initialStatus(req.PaymentMethod)
	appt := &models.Appointment{
		ID:            uuid.New().String(),
		ProviderID:    req.ProviderID,
		ClientID:      req.ClientID,
		Date:          req.Date,
		Segments:      segments,
		Status:        status,
		PaymentStatus: paymentStatus,
		PaymentMethod: req.PaymentMethod,
		Forced:        req.ForceOverride,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := e.Appointments.CreateTransactionally(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrCommitConflict) {
			return nil, &CommitConflictError{Date: req.Date, Window: appt.Window()}
		}
		return nil, err
	}

	e.emit(func() { e.Events.BookingCreated(*appt) })
	return appt, nil
}

func validateBookingRequest(req models.BookingRequest) error {
	if req.ProviderID == "" {
		return validationError("provider id is required")
	}
	if req.ClientID == "" {
		return validationError("client id is required")
	}
	if req.Date == "" {
		return validationError("date is required")
	}
	for _, svc := range req.Services {
		if svc.ServiceID == "" {
			return validationError("service id is required")
		}
		if svc.Duration <= 0 {
			return validationError("service %s duration must be positive, got %d", svc.ServiceID, svc.Duration)
		}
	}
	return nil
}

// initialStatus applies the payment-method policy: on-site settlement
// confirms immediately, online methods stay pending until the payment
// collaborator confirms.
func initialStatus(paymentMethod string) (status, paymentStatus string) {
	switch paymentMethod {
	case models.MethodCash, models.MethodInPerson, "":
		return models.StatusConfirmed, models.PaymentUnpaid
	default:
		return models.StatusPending, models.PaymentPending
	}
}

// emit runs an outbound event hook; event failures never fail a booking.
func (e *DefaultEngine) emit(fn func()) {
	if e.Events == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			utils.GetLogger().Error("outbound event dispatch panicked", zap.Any("recover", r))
		}
	}()
	fn()
}
