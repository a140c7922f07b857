package scheduling

import (
	"context"
	"fmt"
	"time"

	"slotify/models"
	"slotify/utils"

	"go.uber.org/zap"
)

func (e *DefaultEngine) GetAvailability(ctx context.Context, providerID, date string, duration, step int) ([]models.TimeSlot, error) {
	if providerID == "" {
		return nil, validationError("provider id is required")
	}
	if duration <= 0 {
		return nil, validationError("duration must be positive, got %d", duration)
	}
	if step <= 0 {
		step = DefaultStepMinutes
	}

	day, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return nil, validationError("invalid date %q: expected %s", date, models.DateLayout)
	}

	provider, err := e.Providers.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	// Slot math assumes sorted, non-overlapping intervals; a malformed
	// calendar fails loudly instead of silently producing wrong slots.
	if err := provider.WorkingHours.Validate(); err != nil {
		return nil, fmt.Errorf("provider %s working hours: %w", provider.ID, err)
	}

	if date < e.today(provider) {
		return nil, pastDate(date, models.Interval{})
	}

	// Working hours are resolved once here and passed explicitly into the
	// pure slot computation; the core never looks them up implicitly.
	hours := provider.WorkingHours.IntervalsFor(day)
	if len(hours) == 0 {
		return nil, nil
	}

	appts, err := e.Appointments.ListForDay(ctx, providerID, date,
		[]string{models.StatusPending, models.StatusConfirmed})
	if err != nil {
		return nil, err
	}

	slots := BuildSlots(hours, appts, date, duration, step)
	return annotateSafely(e.Optimizer, slots, hours, appts), nil
}

func (e *DefaultEngine) SearchProvidersByService(ctx context.Context, serviceIDs []string, date string) ([]models.Provider, error) {
	if len(serviceIDs) == 0 {
		return nil, validationError("at least one service id is required")
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, validationError("invalid date %q: expected %s", date, models.DateLayout)
	}

	candidates, err := e.Providers.GetByServiceIDs(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}

	logger := utils.GetLogger()
	var matched []models.Provider
	for _, provider := range candidates {
		duration, ok := chainDuration(provider, serviceIDs)
		if !ok {
			continue
		}
		slots, err := e.GetAvailability(ctx, provider.ID, date, duration, 0)
		if err != nil {
			// A provider whose calendar cannot be computed is skipped,
			// not fatal to the whole search.
			logger.Warn("skipping provider in search",
				zap.String("providerID", provider.ID), zap.Error(err))
			continue
		}
		if len(slots) > 0 {
			matched = append(matched, provider)
		}
	}
	return matched, nil
}

// chainDuration sums the provider's catalogue durations for the requested
// services, booked as one consecutive chain.
func chainDuration(provider models.Provider, serviceIDs []string) (int, bool) {
	total := 0
	for _, id := range serviceIDs {
		svc, ok := provider.ServiceByID(id)
		if !ok || svc.Duration <= 0 {
			return 0, false
		}
		total += svc.Duration
	}
	return total, true
}

func (e *DefaultEngine) GetAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	if appointmentID == "" {
		return nil, validationError("appointment id is required")
	}
	return e.Appointments.GetByID(ctx, appointmentID)
}

func (e *DefaultEngine) ListAppointments(ctx context.Context, providerID, date string) ([]models.Appointment, error) {
	if providerID == "" {
		return nil, validationError("provider id is required")
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, validationError("invalid date %q: expected %s", date, models.DateLayout)
	}
	return e.Appointments.ListForDay(ctx, providerID, date, nil)
}
