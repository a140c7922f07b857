package scheduling

import (
	"slotify/models"
	"slotify/utils"

	"go.uber.org/zap"
)

// SlotOptimizer annotates availability slots with adaptation scores. It
// is a strictly optional enhancement layer: it never adds or removes
// slots and is never the source of validity truth.
type SlotOptimizer interface {
	Annotate(slots []models.TimeSlot, hours []models.Interval, appts []models.Appointment) []models.TimeSlot
}

// GapMinimizingOptimizer rewards slots that keep the provider's day
// compact: adjacency to an existing booking or to the edge of an open
// interval scores high, slots that split a large free span score low.
type GapMinimizingOptimizer struct{}

const (
	scoreAdjacentBooking = 2.0
	scoreDayEdge         = 1.0
	scoreFragmenting     = -0.5
)

func (o *GapMinimizingOptimizer) Annotate(slots []models.TimeSlot, hours []models.Interval, appts []models.Appointment) []models.TimeSlot {
	busy := busyWindows(appts)

	annotated := make([]models.TimeSlot, len(slots))
	for i, slot := range slots {
		score, reason := o.scoreSlot(slot.Window(), hours, busy)
		slot.AdaptationScore = score
		slot.AdaptationReason = reason
		annotated[i] = slot
	}
	return annotated
}

func (o *GapMinimizingOptimizer) scoreSlot(window models.Interval, hours, busy []models.Interval) (float64, string) {
	score := 0.0
	reason := "neutral fit"

	for _, b := range busy {
		if b.End == window.Start || window.End == b.Start {
			score += scoreAdjacentBooking
			reason = "adjacent to existing booking, minimizes idle gap"
			break
		}
	}

	for _, iv := range hours {
		if iv.Start == window.Start || iv.End == window.End {
			score += scoreDayEdge
			if reason == "neutral fit" {
				reason = "at the edge of the working day"
			}
			break
		}
	}

	if score == 0 && fragmentsFreeSpan(window, hours, busy) {
		score += scoreFragmenting
		reason = "splits a free span, fragments the day"
	}

	return score, reason
}

// fragmentsFreeSpan reports whether booking the window would leave usable
// free time stranded on both of its sides within one open interval.
func fragmentsFreeSpan(window models.Interval, hours, busy []models.Interval) bool {
	for _, iv := range hours {
		if !iv.Contains(window) {
			continue
		}
		before := models.Interval{Start: iv.Start, End: window.Start}
		after := models.Interval{Start: window.End, End: iv.End}
		return freeSpanAtLeast(before, busy, DefaultStepMinutes) &&
			freeSpanAtLeast(after, busy, DefaultStepMinutes)
	}
	return false
}

func freeSpanAtLeast(span models.Interval, busy []models.Interval, minutes int) bool {
	if span.End-span.Start < minutes {
		return false
	}
	for _, b := range busy {
		if b.Overlaps(span) {
			return false
		}
	}
	return true
}

// annotateSafely runs the optimizer and guarantees that no failure inside
// it can break an availability request: any panic degrades to the raw
// unscored slot list.
func annotateSafely(opt SlotOptimizer, slots []models.TimeSlot, hours []models.Interval, appts []models.Appointment) (out []models.TimeSlot) {
	if opt == nil {
		return slots
	}
	defer func() {
		if r := recover(); r != nil {
			utils.GetLogger().Error("slot optimizer failed, returning unscored slots", zap.Any("recover", r))
			out = slots
		}
	}()
	annotated := opt.Annotate(slots, hours, appts)
	if len(annotated) != len(slots) {
		utils.GetLogger().Warn("slot optimizer changed slot count, returning unscored slots",
			zap.Int("want", len(slots)), zap.Int("got", len(annotated)))
		return slots
	}
	return annotated
}
