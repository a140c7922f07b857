package scheduling

import (
	"context"
	"time"

	appointmentRepo "slotify/database/repository/appointment"
	providerRepo "slotify/database/repository/provider"
	"slotify/models"
)

// Engine is the scheduling and availability core. All operations are
// bounded to a single provider/date computation per call; reads are pure
// and freely concurrent, writes are serialized by the repository's
// transaction plus slot-lock constraint.
type Engine interface {
	// GetAvailability computes the ordered bookable slots for a provider,
	// date and duration. step <= 0 selects DefaultStepMinutes. Zero slots
	// is a valid, non-error result.
	GetAvailability(ctx context.Context, providerID, date string, duration, step int) ([]models.TimeSlot, error)
	// SearchProvidersByService returns the providers offering every given
	// service that still have at least one slot fitting the composed
	// chain on the date.
	SearchProvidersByService(ctx context.Context, serviceIDs []string, date string) ([]models.Provider, error)
	// CreateBooking persists a single-service booking, re-checking
	// conflicts atomically at write time.
	CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Appointment, error)
	// CreateConsecutiveBooking persists one multi-segment booking
	// covering back-to-back services; all segments commit or none do.
	CreateConsecutiveBooking(ctx context.Context, req models.BookingRequest) (*models.Appointment, error)
	// UpdateAppointmentStatus applies one status-machine transition; an
	// empty paymentStatus leaves the payment state untouched.
	UpdateAppointmentStatus(ctx context.Context, appointmentID, status, paymentStatus string) (*models.Appointment, error)
	// GetAppointment fetches a single appointment.
	GetAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error)
	// ListAppointments lists a provider's appointments for one date.
	ListAppointments(ctx context.Context, providerID, date string) ([]models.Appointment, error)
}

// EventDispatcher receives the fire-and-forget outbound events emitted
// after a successful write. Implementations must swallow their own
// failures; nothing they do may fail or roll back a booking.
type EventDispatcher interface {
	BookingCreated(appt models.Appointment)
	StatusChanged(appt models.Appointment, previousStatus string)
	EarningsRecompute(appt models.Appointment)
}

// DefaultEngine is the production Engine.
type DefaultEngine struct {
	Appointments appointmentRepo.AppointmentRepository
	Providers    providerRepo.ProviderRepository
	Optimizer    SlotOptimizer
	Events       EventDispatcher
	// Clock overrides time.Now, mainly for tests.
	Clock func() time.Time
}

func (e *DefaultEngine) now() time.Time {
	if e.Clock != nil {
		return e.Clock()
	}
	return time.Now()
}

// today returns the current date in the provider's timezone.
func (e *DefaultEngine) today(provider *models.Provider) string {
	return e.now().In(provider.Location()).Format(models.DateLayout)
}
