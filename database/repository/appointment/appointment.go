package appointmentRepo

import (
	"context"
	"errors"

	"slotify/models"
)

// Sentinel errors surfaced by implementations.
var (
	// ErrNotFound means no appointment matches the given ID.
	ErrNotFound = errors.New("appointment not found")
	// ErrCommitConflict means the commit-time overlap re-check failed:
	// another booking claimed the window after the caller's availability
	// view was computed.
	ErrCommitConflict = errors.New("appointment window no longer free")
	// ErrStaleStatus means a concurrent transition changed the status
	// between the caller's read and its conditional update.
	ErrStaleStatus = errors.New("appointment status changed concurrently")
)

// AppointmentRepository defines data access for appointments.
type AppointmentRepository interface {
	// GetByID retrieves an appointment by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// ListForDay returns a provider's appointments on a date, optionally
	// filtered to the given statuses (nil means all).
	ListForDay(ctx context.Context, providerID, date string, statuses []string) ([]models.Appointment, error)
	// CreateTransactionally inserts the appointment after re-checking,
	// inside the same transaction, that no pending/confirmed appointment
	// overlaps its window. A forced appointment skips the overlap check
	// but still respects the transaction. Returns ErrCommitConflict when
	// the re-check or the slot-lock uniqueness constraint fails.
	CreateTransactionally(ctx context.Context, appt *models.Appointment) error
	// UpdateStatus sets the status (and optionally the payment status,
	// when paymentStatus is non-empty) and returns the updated document.
	// The write is conditional on expectedStatus still being the current
	// status; ErrStaleStatus reports a lost race.
	UpdateStatus(ctx context.Context, id, expectedStatus, status, paymentStatus string) (*models.Appointment, error)
	// ReleaseLocks frees the slot locks held by an appointment once it
	// leaves the pending/confirmed set.
	ReleaseLocks(ctx context.Context, appointmentID string) error
}
