package scheduling

import (
	"context"
	"fmt"
	"sync"
	"time"

	appointmentRepo "slotify/database/repository/appointment"
	providerRepo "slotify/database/repository/provider"
	"slotify/models"
)

// fakeAppointmentRepo mirrors the Mongo repository's commit semantics in
// memory: a write re-checks overlaps against blocking appointments and
// claims per-slot locks, so the commit-conflict paths are exercised for
// real.
type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[string]*models.Appointment
	locks        map[string]string // provider|date|start -> appointment ID
	createErr    error
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		appointments: make(map[string]*models.Appointment),
		locks:        make(map[string]string),
	}
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	appt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	cp := *appt
	return &cp, nil
}

func (f *fakeAppointmentRepo) ListForDay(_ context.Context, providerID, date string, statuses []string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, appt := range f.appointments {
		if appt.ProviderID != providerID || appt.Date != date {
			continue
		}
		if statuses != nil && !contains(statuses, appt.Status) {
			continue
		}
		out = append(out, *appt)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) CreateTransactionally(_ context.Context, appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}

	window := appt.Window()
	if !appt.Forced {
		for _, existing := range f.appointments {
			if existing.ProviderID != appt.ProviderID || existing.Date != appt.Date {
				continue
			}
			if existing.Blocks() && existing.Window().Overlaps(window) {
				return appointmentRepo.ErrCommitConflict
			}
		}
		for _, start := range lockOffsets(window) {
			if _, taken := f.locks[f.lockKey(appt, start)]; taken {
				return appointmentRepo.ErrCommitConflict
			}
		}
		for _, start := range lockOffsets(window) {
			f.locks[f.lockKey(appt, start)] = appt.ID
		}
	}

	cp := *appt
	f.appointments[appt.ID] = &cp
	return nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id, expectedStatus, status, paymentStatus string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	appt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	if appt.Status != expectedStatus {
		return nil, appointmentRepo.ErrStaleStatus
	}
	appt.Status = status
	if paymentStatus != "" {
		appt.PaymentStatus = paymentStatus
	}
	appt.UpdatedAt = time.Now()
	cp := *appt
	return &cp, nil
}

func (f *fakeAppointmentRepo) ReleaseLocks(_ context.Context, appointmentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, holder := range f.locks {
		if holder == appointmentID {
			delete(f.locks, key)
		}
	}
	return nil
}

func (f *fakeAppointmentRepo) lockKey(appt *models.Appointment, start int) string {
	return fmt.Sprintf("%s|%s|%d", appt.ProviderID, appt.Date, start)
}

// lockOffsets mirrors the production lock layout: cells anchored to
// grain multiples, so overlapping windows always contend for a cell.
func lockOffsets(window models.Interval) []int {
	const grain = 5
	var offsets []int
	for s := window.Start - window.Start%grain; s < window.End; s += grain {
		offsets = append(offsets, s)
	}
	return offsets
}

func (f *fakeAppointmentRepo) dropAppointmentKeepLocks(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.appointments, id)
}

func (f *fakeAppointmentRepo) lockCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.locks)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

type fakeProviderRepo struct {
	providers map[string]*models.Provider
}

func newFakeProviderRepo(providers ...*models.Provider) *fakeProviderRepo {
	repo := &fakeProviderRepo{providers: make(map[string]*models.Provider)}
	for _, p := range providers {
		repo.providers[p.ID] = p
	}
	return repo
}

func (f *fakeProviderRepo) GetByID(_ context.Context, id string) (*models.Provider, error) {
	p, ok := f.providers[id]
	if !ok {
		return nil, providerRepo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProviderRepo) GetByServiceIDs(_ context.Context, serviceIDs []string) ([]models.Provider, error) {
	var out []models.Provider
	for _, p := range f.providers {
		all := true
		for _, id := range serviceIDs {
			if _, ok := p.ServiceByID(id); !ok {
				all = false
				break
			}
		}
		if all {
			out = append(out, *p)
		}
	}
	return out, nil
}

// staleReadAppointments serves reads from a frozen snapshot while writes
// hit the live store, reproducing a concurrent transition that lands
// between the caller's read and its update.
type staleReadAppointments struct {
	*fakeAppointmentRepo
	snapshot models.Appointment
}

func (r *staleReadAppointments) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	if id == r.snapshot.ID {
		cp := r.snapshot
		return &cp, nil
	}
	return nil, appointmentRepo.ErrNotFound
}

// recordingDispatcher captures emitted events for assertions.
type recordingDispatcher struct {
	created   []models.Appointment
	changed   []string // "id:previous->current"
	recompute []string // appointment IDs
}

func (d *recordingDispatcher) BookingCreated(appt models.Appointment) {
	d.created = append(d.created, appt)
}

func (d *recordingDispatcher) StatusChanged(appt models.Appointment, previous string) {
	d.changed = append(d.changed, fmt.Sprintf("%s:%s->%s", appt.ID, previous, appt.Status))
}

func (d *recordingDispatcher) EarningsRecompute(appt models.Appointment) {
	d.recompute = append(d.recompute, appt.ID)
}

// panickingDispatcher verifies that event failures never propagate.
type panickingDispatcher struct{}

func (panickingDispatcher) BookingCreated(models.Appointment)        { panic("dispatcher down") }
func (panickingDispatcher) StatusChanged(models.Appointment, string) { panic("dispatcher down") }
func (panickingDispatcher) EarningsRecompute(models.Appointment)     { panic("dispatcher down") }

// Test fixtures: a barber open Monday 9:00-17:00, clock frozen the Sunday
// before in UTC.
const (
	testProviderID = "prov-1"
	testMonday     = "2026-03-02"
)

func testProvider() *models.Provider {
	var wh models.WorkingHours
	wh.Weekdays[int(time.Monday)] = []models.Interval{{Start: 540, End: 1020}}
	return &models.Provider{
		ID:       testProviderID,
		Name:     "Fade Factory",
		Timezone: "UTC",
		Services: []models.Service{
			{ID: "cut", Name: "Haircut", Duration: 45},
			{ID: "color", Name: "Coloring", Duration: 90},
			{ID: "shave", Name: "Hot Shave", Duration: 30},
		},
		WorkingHours: wh,
	}
}

func testClock() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func newTestEngine(appts *fakeAppointmentRepo, events EventDispatcher) *DefaultEngine {
	return &DefaultEngine{
		Appointments: appts,
		Providers:    newFakeProviderRepo(testProvider()),
		Optimizer:    &GapMinimizingOptimizer{},
		Events:       events,
		Clock:        testClock,
	}
}
