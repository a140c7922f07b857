package scheduling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appointmentRepo "slotify/database/repository/appointment"
	"slotify/models"
)

func singleCutRequest(clientID string, start int) models.BookingRequest {
	return models.BookingRequest{
		ProviderID: testProviderID,
		ClientID:   clientID,
		Date:       testMonday,
		Start:      start,
		Services:   []models.ServiceSpec{{ServiceID: "cut", Duration: 45}},
	}
}

func TestCreateBookingPersistsAppointment(t *testing.T) {
	repo := newFakeAppointmentRepo()
	events := &recordingDispatcher{}
	engine := newTestEngine(repo, events)
	ctx := context.Background()

	appt, err := engine.CreateBooking(ctx, singleCutRequest("client-1", 540))
	require.NoError(t, err)

	assert.NotEmpty(t, appt.ID)
	assert.Equal(t, testMonday, appt.Date)
	assert.Equal(t, models.Interval{Start: 540, End: 585}, appt.Window())
	assert.Equal(t, models.StatusConfirmed, appt.Status)
	assert.Equal(t, models.PaymentUnpaid, appt.PaymentStatus)
	assert.Equal(t, testClock(), appt.CreatedAt)

	stored, err := repo.GetByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, appt.ID, stored.ID)

	require.Len(t, events.created, 1)
	assert.Equal(t, appt.ID, events.created[0].ID)
}

func TestCreateBookingServiceCountDiscrimination(t *testing.T) {
	engine := newTestEngine(newFakeAppointmentRepo(), nil)
	ctx := context.Background()

	var ve *ValidationError
	req := singleCutRequest("client-1", 540)
	req.Services = append(req.Services, models.ServiceSpec{ServiceID: "shave", Duration: 30})
	_, err := engine.CreateBooking(ctx, req)
	assert.ErrorAs(t, err, &ve)

	_, err = engine.CreateConsecutiveBooking(ctx, singleCutRequest("client-1", 540))
	assert.ErrorAs(t, err, &ve)
}

func TestCreateConsecutiveBookingSingleAppointment(t *testing.T) {
	repo := newFakeAppointmentRepo()
	engine := newTestEngine(repo, nil)
	ctx := context.Background()

	appt, err := engine.CreateConsecutiveBooking(ctx, models.BookingRequest{
		ProviderID: testProviderID,
		ClientID:   "client-1",
		Date:       testMonday,
		Start:      540,
		Services: []models.ServiceSpec{
			{ServiceID: "cut", Duration: 45},
			{ServiceID: "color", Duration: 90},
		},
	})
	require.NoError(t, err)

	require.Len(t, appt.Segments, 2)
	assert.Equal(t, 585, appt.Segments[0].End)
	assert.Equal(t, 585, appt.Segments[1].Start)
	assert.Equal(t, models.Interval{Start: 540, End: 675}, appt.Window())

	// One appointment document, not one per segment.
	appts, err := repo.ListForDay(ctx, testProviderID, testMonday, nil)
	require.NoError(t, err)
	assert.Len(t, appts, 1)
}

func TestCreateConsecutiveBookingRejectsWholeChain(t *testing.T) {
	repo := newFakeAppointmentRepo()
	engine := newTestEngine(repo, nil)
	ctx := context.Background()

	// Occupy 11:30-12:30.
	_, err := engine.CreateBooking(ctx, models.BookingRequest{
		ProviderID: testProviderID,
		ClientID:   "client-1",
		Date:       testMonday,
		Start:      690,
		Services:   []models.ServiceSpec{{ServiceID: "shave", Duration: 60}},
	})
	require.NoError(t, err)

	// Chain from 10:30 whose second segment collides: nothing persists.
	_, err = engine.CreateConsecutiveBooking(ctx, models.BookingRequest{
		ProviderID: testProviderID,
		ClientID:   "client-2",
		Date:       testMonday,
		Start:      630,
		Services: []models.ServiceSpec{
			{ServiceID: "cut", Duration: 45},
			{ServiceID: "color", Duration: 90},
		},
	})
	assert.True(t, IsConflict(err, KindOverlap))

	appts, err := repo.ListForDay(ctx, testProviderID, testMonday, nil)
	require.NoError(t, err)
	assert.Len(t, appts, 1, "failed chain must not leave partial segments behind")
}

func TestCreateBookingOverlapAndForce(t *testing.T) {
	repo := newFakeAppointmentRepo()
	engine := newTestEngine(repo, nil)
	ctx := context.Background()

	_, err := engine.CreateBooking(ctx, singleCutRequest("client-1", 600))
	require.NoError(t, err)

	_, err = engine.CreateBooking(ctx, singleCutRequest("client-2", 615))
	assert.True(t, IsConflict(err, KindOverlap))

	forced := singleCutRequest("client-2", 615)
	forced.ForceOverride = true
	appt, err := engine.CreateBooking(ctx, forced)
	require.NoError(t, err)
	assert.True(t, appt.Forced)

	// Force never books outside working hours or in the past.
	outside := singleCutRequest("client-3", 480)
	outside.ForceOverride = true
	_, err = engine.CreateBooking(ctx, outside)
	assert.True(t, IsConflict(err, KindOutsideWorkingHours))

	past := singleCutRequest("client-3", 600)
	past.Date = "2026-02-23"
	past.ForceOverride = true
	_, err = engine.CreateBooking(ctx, past)
	assert.True(t, IsConflict(err, KindPastDate))
}

func TestCreateBookingCommitConflict(t *testing.T) {
	repo := newFakeAppointmentRepo()
	repo.createErr = appointmentRepo.ErrCommitConflict
	engine := newTestEngine(repo, nil)

	_, err := engine.CreateBooking(context.Background(), singleCutRequest("client-1", 600))

	var cce *CommitConflictError
	require.ErrorAs(t, err, &cce)
	assert.Equal(t, testMonday, cce.Date)
	assert.Equal(t, models.Interval{Start: 600, End: 645}, cce.Window)
}

// Two writers whose windows start at odd minutes must still collide on
// the slot locks. Dropping the first appointment document while keeping
// its locks mimics the racing transaction whose insert the second
// writer's overlap re-check cannot see yet: the lock constraint is then
// the only thing standing between the two bookings.
func TestMisalignedWindowsContendOnSlotLocks(t *testing.T) {
	repo := newFakeAppointmentRepo()
	ctx := context.Background()

	first := &models.Appointment{
		ID:         "appt-1",
		ProviderID: testProviderID,
		Date:       testMonday,
		Status:     models.StatusConfirmed,
		Segments:   []models.Segment{{ServiceID: "cut", Start: 602, End: 632}},
	}
	require.NoError(t, repo.CreateTransactionally(ctx, first))
	repo.dropAppointmentKeepLocks(first.ID)

	second := &models.Appointment{
		ID:         "appt-2",
		ProviderID: testProviderID,
		Date:       testMonday,
		Status:     models.StatusConfirmed,
		Segments:   []models.Segment{{ServiceID: "cut", Start: 605, End: 635}},
	}
	err := repo.CreateTransactionally(ctx, second)
	assert.ErrorIs(t, err, appointmentRepo.ErrCommitConflict)
}

func TestCreateBookingPaymentMethodPolicy(t *testing.T) {
	tests := []struct {
		method            string
		wantStatus        string
		wantPaymentStatus string
	}{
		{models.MethodCash, models.StatusConfirmed, models.PaymentUnpaid},
		{models.MethodInPerson, models.StatusConfirmed, models.PaymentUnpaid},
		{"", models.StatusConfirmed, models.PaymentUnpaid},
		{"card", models.StatusPending, models.PaymentPending},
		{"mobile_money", models.StatusPending, models.PaymentPending},
	}

	for _, tt := range tests {
		t.Run("method_"+tt.method, func(t *testing.T) {
			engine := newTestEngine(newFakeAppointmentRepo(), nil)
			req := singleCutRequest("client-1", 600)
			req.PaymentMethod = tt.method

			appt, err := engine.CreateBooking(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, appt.Status)
			assert.Equal(t, tt.wantPaymentStatus, appt.PaymentStatus)
		})
	}
}

func TestCreateBookingValidatesRequest(t *testing.T) {
	engine := newTestEngine(newFakeAppointmentRepo(), nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.BookingRequest)
	}{
		{"missing provider", func(r *models.BookingRequest) { r.ProviderID = "" }},
		{"missing client", func(r *models.BookingRequest) { r.ClientID = "" }},
		{"missing date", func(r *models.BookingRequest) { r.Date = "" }},
		{"malformed date", func(r *models.BookingRequest) { r.Date = "02.03.2026" }},
		{"missing service id", func(r *models.BookingRequest) { r.Services[0].ServiceID = "" }},
		{"non-positive duration", func(r *models.BookingRequest) { r.Services[0].Duration = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := singleCutRequest("client-1", 600)
			tt.mutate(&req)

			var ve *ValidationError
			_, err := engine.CreateBooking(ctx, req)
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestBookingSucceedsWhenDispatcherPanics(t *testing.T) {
	repo := newFakeAppointmentRepo()
	engine := newTestEngine(repo, panickingDispatcher{})
	ctx := context.Background()

	appt, err := engine.CreateBooking(ctx, singleCutRequest("client-1", 600))
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, stored.Status)
}

func TestGetAndListAppointments(t *testing.T) {
	repo := newFakeAppointmentRepo()
	engine := newTestEngine(repo, nil)
	ctx := context.Background()

	created, err := engine.CreateBooking(ctx, singleCutRequest("client-1", 600))
	require.NoError(t, err)

	got, err := engine.GetAppointment(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = engine.GetAppointment(ctx, "missing")
	assert.ErrorIs(t, err, appointmentRepo.ErrNotFound)

	listed, err := engine.ListAppointments(ctx, testProviderID, testMonday)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}
