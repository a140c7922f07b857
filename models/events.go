package models

import "time"

// Outbound event types emitted by the booking transaction creator.
const (
	EventBookingCreated    = "booking_created"
	EventStatusChanged     = "status_changed"
	EventEarningsRecompute = "earnings_recompute"
)

// BookingEvent is the payload queued for the notification dispatcher.
type BookingEvent struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	AppointmentID  string    `json:"appointmentId"`
	ProviderID     string    `json:"providerId"`
	ClientID       string    `json:"clientId"`
	Date           string    `json:"date"`
	Start          int       `json:"start"`
	End            int       `json:"end"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// EarningsEvent triggers a provider balance/earnings recompute; it fires
// when an appointment transitions to completed.
type EarningsEvent struct {
	ID            string    `json:"id"`
	ProviderID    string    `json:"providerId"`
	AppointmentID string    `json:"appointmentId"`
	CreatedAt     time.Time `json:"createdAt"`
}
