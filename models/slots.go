package models

// TimeSlot is a computed candidate booking window; it is never persisted.
// End-Start always equals the requested duration exactly. AdaptationScore
// and AdaptationReason are optional annotations added by the optimizer
// pass (higher score = better fit for the provider's existing day).
type TimeSlot struct {
	Date             string  `json:"date"`
	Start            int     `json:"start"`
	End              int     `json:"end"`
	IsAvailable      bool    `json:"isAvailable"`
	AdaptationScore  float64 `json:"adaptationScore,omitempty"`
	AdaptationReason string  `json:"adaptationReason,omitempty"`
}

// Window returns the slot's interval.
func (s TimeSlot) Window() Interval {
	return Interval{Start: s.Start, End: s.End}
}
