package scheduling

import "slotify/models"

// CheckWindow is the conflict detector: a pure predicate deciding whether
// a candidate window may be booked. hours are the provider's resolved
// open intervals for the date (exceptions already applied), appts the
// provider's appointments for that date, today the current date in the
// provider's timezone. forceOverride suppresses only overlap conflicts;
// past-date and outside-working-hours violations are always fatal since
// force-booking exists to let a provider squeeze a client into a busy
// slot, not to operate outside declared hours or in the past.
func CheckWindow(hours []models.Interval, appts []models.Appointment, date, today string, window models.Interval, forceOverride bool) error {
	if window.Start >= window.End {
		return validationError("window start %d must precede end %d", window.Start, window.End)
	}

	// ISO dates compare correctly as strings.
	if date < today {
		return pastDate(date, window)
	}

	if !withinHours(hours, window) {
		return outsideWorkingHours(date, window)
	}

	if forceOverride {
		return nil
	}
	for _, appt := range appts {
		if !appt.Blocks() {
			continue
		}
		if appt.Window().Overlaps(window) {
			return overlapConflict(date, window)
		}
	}
	return nil
}

func withinHours(hours []models.Interval, window models.Interval) bool {
	for _, iv := range hours {
		if iv.Contains(window) {
			return true
		}
	}
	return false
}
