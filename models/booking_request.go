package models

// ServiceSpec names one service and its duration in minutes inside a
// booking request.
type ServiceSpec struct {
	ServiceID string `json:"serviceId" binding:"required"`
	Duration  int    `json:"duration" binding:"required"`
}

// BookingRequest is the single explicit request shape for both
// single-service and consecutive multi-service bookings. It is validated
// once at the system boundary before reaching the scheduling core.
type BookingRequest struct {
	ProviderID    string        `json:"providerId" binding:"required"`
	ClientID      string        `json:"clientId" binding:"required"`
	Date          string        `json:"date" binding:"required"`
	Start         int           `json:"start"`
	Services      []ServiceSpec `json:"services" binding:"required"`
	PaymentMethod string        `json:"paymentMethod"`
	ForceOverride bool          `json:"forceOverride,omitempty"`
}

// TotalDuration sums the requested service durations.
func (r BookingRequest) TotalDuration() int {
	total := 0
	for _, s := range r.Services {
		total += s.Duration
	}
	return total
}
