package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to string
		allowed  bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCanceled, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusNoShow, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCanceled, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusCanceled, false},
		{StatusCanceled, StatusConfirmed, false},
		{StatusNoShow, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransitionStatus(tt.from, tt.to))
		})
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.False(t, IsTerminalStatus(StatusPending))
	assert.False(t, IsTerminalStatus(StatusConfirmed))
	assert.True(t, IsTerminalStatus(StatusCompleted))
	assert.True(t, IsTerminalStatus(StatusCanceled))
	assert.True(t, IsTerminalStatus(StatusNoShow))
}

func TestAppointmentWindowSpansSegments(t *testing.T) {
	appt := Appointment{Segments: []Segment{
		{ServiceID: "cut", Start: 540, End: 585},
		{ServiceID: "color", Start: 585, End: 675},
	}}
	assert.Equal(t, Interval{Start: 540, End: 675}, appt.Window())

	assert.Equal(t, Interval{}, Appointment{}.Window())
}

func TestAppointmentBlocks(t *testing.T) {
	for status, blocks := range map[string]bool{
		StatusPending:   true,
		StatusConfirmed: true,
		StatusCompleted: false,
		StatusCanceled:  false,
		StatusNoShow:    false,
	} {
		assert.Equal(t, blocks, Appointment{Status: status}.Blocks(), status)
	}
}
