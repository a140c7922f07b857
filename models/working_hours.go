package models

import (
	"fmt"
	"time"
)

// Interval is a half-open [Start, End) window within a single day,
// expressed in minutes from midnight (e.g., 540 for 9:00 AM).
type Interval struct {
	Start int `bson:"start" json:"start"`
	End   int `bson:"end" json:"end"`
}

// Overlaps reports whether two intervals share any time.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// Contains reports whether the whole of other lies within iv.
func (iv Interval) Contains(other Interval) bool {
	return iv.Start <= other.Start && other.End <= iv.End
}

// WorkingHours describes when a provider accepts bookings. Weekdays holds
// the recurring open intervals indexed by time.Weekday (0 = Sunday); an
// empty list means the provider is closed that weekday. Exceptions
// override a specific "2006-01-02" date entirely: the replacement
// intervals are used instead of the weekday ones, and an empty
// replacement means closed for that date.
type WorkingHours struct {
	Weekdays   [7][]Interval         `bson:"weekdays" json:"weekdays"`
	Exceptions map[string][]Interval `bson:"exceptions,omitempty" json:"exceptions,omitempty"`
}

// IntervalsFor resolves the open intervals for a concrete date.
func (wh WorkingHours) IntervalsFor(date time.Time) []Interval {
	if wh.Exceptions != nil {
		if ivs, ok := wh.Exceptions[date.Format(DateLayout)]; ok {
			return ivs
		}
	}
	return wh.Weekdays[int(date.Weekday())]
}

// Validate checks that every interval is well-formed and that intervals
// within one weekday (or one exception date) are sorted and non-overlapping.
func (wh WorkingHours) Validate() error {
	for day, ivs := range wh.Weekdays {
		if err := validateIntervals(ivs); err != nil {
			return fmt.Errorf("weekday %s: %w", time.Weekday(day), err)
		}
	}
	for date, ivs := range wh.Exceptions {
		if _, err := time.Parse(DateLayout, date); err != nil {
			return fmt.Errorf("exception date %q: %w", date, err)
		}
		if err := validateIntervals(ivs); err != nil {
			return fmt.Errorf("exception %s: %w", date, err)
		}
	}
	return nil
}

func validateIntervals(ivs []Interval) error {
	const minutesPerDay = 24 * 60
	for i, iv := range ivs {
		if iv.Start < 0 || iv.End > minutesPerDay || iv.Start >= iv.End {
			return fmt.Errorf("interval [%d, %d) is malformed", iv.Start, iv.End)
		}
		if i > 0 && ivs[i-1].End > iv.Start {
			return fmt.Errorf("interval [%d, %d) overlaps or precedes [%d, %d)",
				iv.Start, iv.End, ivs[i-1].Start, ivs[i-1].End)
		}
	}
	return nil
}

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"
