package models

import "time"

// Appointment status values. Cancellation is a status transition, never
// a document delete.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCanceled  = "canceled"
	StatusNoShow    = "no_show"
)

// Payment status values; transitions are owned by the payment
// reconciliation collaborator, the core only records them.
const (
	PaymentUnpaid   = "unpaid"
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// Payment methods settled on site; these confirm the appointment immediately.
const (
	MethodCash     = "cash"
	MethodInPerson = "in_person"
)

// Segment is one service's time range inside an appointment. Segments of
// a multi-service appointment are contiguous: each End equals the next Start.
type Segment struct {
	ServiceID string `bson:"service_id" json:"serviceId"`
	Start     int    `bson:"start" json:"start"`
	End       int    `bson:"end" json:"end"`
}

// Appointment is a persisted booking: one provider, one client, one date,
// one or more back-to-back service segments.
type Appointment struct {
	ID            string    `bson:"id" json:"id"`
	ProviderID    string    `bson:"provider_id" json:"providerId"`
	ClientID      string    `bson:"client_id" json:"clientId"`
	Date          string    `bson:"date" json:"date"`
	Segments      []Segment `bson:"segments" json:"segments"`
	Status        string    `bson:"status" json:"status"`
	PaymentStatus string    `bson:"payment_status" json:"paymentStatus"`
	PaymentMethod string    `bson:"payment_method" json:"paymentMethod"`
	Forced        bool      `bson:"forced,omitempty" json:"forced,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updatedAt"`
}

// Window returns the composite window spanning all segments.
func (a Appointment) Window() Interval {
	if len(a.Segments) == 0 {
		return Interval{}
	}
	return Interval{Start: a.Segments[0].Start, End: a.Segments[len(a.Segments)-1].End}
}

// Blocks reports whether the appointment occupies calendar time: only
// pending and confirmed appointments do.
func (a Appointment) Blocks() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

var statusTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCanceled},
	StatusConfirmed: {StatusCompleted, StatusCanceled, StatusNoShow},
}

// CanTransitionStatus reports whether moving an appointment from one
// status to another is allowed.
func CanTransitionStatus(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether no further transitions exist.
func IsTerminalStatus(status string) bool {
	return len(statusTransitions[status]) == 0
}

// IsValidStatus reports whether s is one of the known appointment statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCanceled, StatusNoShow:
		return true
	}
	return false
}

// IsValidPaymentStatus reports whether s is a known payment status.
func IsValidPaymentStatus(s string) bool {
	switch s {
	case PaymentUnpaid, PaymentPending, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}
