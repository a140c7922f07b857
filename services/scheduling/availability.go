package scheduling

import "slotify/models"

// DefaultStepMinutes is the slot generation step used when a caller does
// not specify one.
const DefaultStepMinutes = 30

// BuildSlots generates the ordered candidate slots for one day: every
// step boundary inside the open intervals where a full duration fits and
// no pending/confirmed appointment overlaps. Trailing windows that cannot
// fit the whole duration are dropped, not truncated. The result is a pure
// function of its inputs.
func BuildSlots(hours []models.Interval, appts []models.Appointment, date string, duration, step int) []models.TimeSlot {
	busy := busyWindows(appts)

	var slots []models.TimeSlot
	for _, iv := range hours {
		for start := iv.Start; start+duration <= iv.End; start += step {
			window := models.Interval{Start: start, End: start + duration}
			if overlapsAny(busy, window) {
				continue
			}
			slots = append(slots, models.TimeSlot{
				Date:        date,
				Start:       window.Start,
				End:         window.End,
				IsAvailable: true,
			})
		}
	}
	return slots
}

func busyWindows(appts []models.Appointment) []models.Interval {
	var busy []models.Interval
	for _, appt := range appts {
		if appt.Blocks() {
			busy = append(busy, appt.Window())
		}
	}
	return busy
}

func overlapsAny(busy []models.Interval, window models.Interval) bool {
	for _, b := range busy {
		if b.Overlaps(window) {
			return true
		}
	}
	return false
}
