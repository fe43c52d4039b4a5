package booking

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	bookingRepo "detailing/database/repository/bookings"
	"detailing/metrics"
	"detailing/models"
	"detailing/services/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo is an in-memory BookingRepository that enforces the unique slot key.
type memRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
}

func newMemRepo() *memRepo { return &memRepo{bookings: map[string]models.Booking{}} }

func (r *memRepo) Create(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.SlotKey != "" {
		for _, existing := range r.bookings {
			if existing.SlotKey == b.SlotKey {
				return bookingRepo.ErrSlotTaken
			}
		}
	}
	b.CreatedAt = time.Now()
	r.bookings[b.ID] = *b
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (r *memRepo) FindByDate(ctx context.Context, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Date == date && b.Status != models.BookingStatusCancelled {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memRepo) ListByDateRange(ctx context.Context, from, to string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Booking{}
	for _, b := range r.bookings {
		if b.Date >= from && b.Date <= to {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date+out[i].Time24 < out[j].Date+out[j].Time24 })
	return out, nil
}

func (r *memRepo) UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	if status == models.BookingStatusCancelled {
		b.SlotKey = ""
	}
	r.bookings[id] = b
	return &b, nil
}

func (r *memRepo) SetCalendarEventID(ctx context.Context, id, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.CalendarEventID = eventID
	r.bookings[id] = b
	return nil
}

func (r *memRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *memRepo) EnsureIndexes() error { return nil }

// memLocker is a process-local Locker.
type memLocker struct {
	mu   sync.Mutex
	held map[string]bool
	err  error
}

func (l *memLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	for {
		l.mu.Lock()
		if l.held == nil {
			l.held = map[string]bool{}
		}
		if !l.held[key] {
			l.held[key] = true
			l.mu.Unlock()
			return func() {
				l.mu.Lock()
				delete(l.held, key)
				l.mu.Unlock()
			}, nil
		}
		l.mu.Unlock()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Millisecond):
		}
	}
}

type fakeCalendar struct {
	mu       sync.Mutex
	inserted []string
	deleted  []string
	err      error
}

func (c *fakeCalendar) InsertBookingEvent(ctx context.Context, b models.Booking, start, end time.Time) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return "", c.err
	}
	c.inserted = append(c.inserted, b.ID)
	return "evt-" + b.ID, nil
}

func (c *fakeCalendar) DeleteEvent(ctx context.Context, eventID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, eventID)
	return nil
}

type fakeNotifier struct {
	mu        sync.Mutex
	created   []string
	cancelled []string
}

func (n *fakeNotifier) BookingCreated(ctx context.Context, b models.Booking, start time.Time) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, b.ID)
	return nil
}

func (n *fakeNotifier) BookingCancelled(ctx context.Context, b models.Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelled = append(n.cancelled, b.ID)
	return nil
}

type memCache struct {
	mu          sync.Mutex
	entries     map[string][]models.DayAvailability
	invalidated []string
}

func (c *memCache) Get(ctx context.Context, key string) ([]models.DayAvailability, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.entries[key]
	return d, ok
}

func (c *memCache) Set(ctx context.Context, key string, days []models.DayAvailability) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = map[string][]models.DayAvailability{}
	}
	c.entries[key] = days
}

func (c *memCache) InvalidateMonth(ctx context.Context, month string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, month)
	c.entries = nil
}

type durations map[string]int

func (d durations) DurationByTitle(ctx context.Context, title string) (int, bool, error) {
	for k, v := range d {
		if strings.EqualFold(k, title) {
			return v, true, nil
		}
	}
	return 0, false, nil
}

// 2025-06-10 12:00 in Halifax, a Tuesday.
var testNow = time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *DefaultBookingService
	repo     *memRepo
	locker   *memLocker
	calendar *fakeCalendar
	notifier *fakeNotifier
	cache    *memCache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loc, err := schedule.LoadLocation("America/Halifax")
	require.NoError(t, err)

	repo := newMemRepo()
	catalog := durations{"Basic Wash": 60, "Full Detail": 90}
	agg := schedule.NewAggregator(nil, schedule.SourceConfig{
		Source:  &schedule.BookingSource{Bookings: repo, Durations: catalog, Location: loc, DefaultDuration: 60},
		Timeout: time.Second,
	})
	engine := schedule.NewEngine(schedule.DefaultRules(loc), agg, catalog, nil)

	f := &fixture{repo: repo, locker: &memLocker{}, calendar: &fakeCalendar{}, notifier: &fakeNotifier{}, cache: &memCache{}}
	f.svc = &DefaultBookingService{
		Engine:   engine,
		Repo:     repo,
		Locker:   f.locker,
		Cache:    f.cache,
		Calendar: f.calendar,
		Notifier: f.notifier,
		Now:      func() time.Time { return testNow },
	}
	return f
}

func input(date, at, service string) models.BookingInput {
	return models.BookingInput{
		CustomerName:  " Sam Lee ",
		CustomerEmail: "Sam@Example.com",
		CustomerPhone: "902-555-0100",
		Service:       service,
		Date:          date,
		Time:          at,
	}
}

func TestCreateBooking(t *testing.T) {
	f := newFixture(t)

	b, err := f.svc.CreateBooking(context.Background(), input("2025-06-11", "9am", "Full Detail"))
	require.NoError(t, err)
	assert.Equal(t, "Sam Lee", b.CustomerName)
	assert.Equal(t, "sam@example.com", b.CustomerEmail)
	assert.Equal(t, "09:00", b.Time24)
	assert.Equal(t, "9:00 AM", b.Time)
	assert.Equal(t, "2025-06-11T12:00:00Z", b.StartUTC)
	assert.Equal(t, 90, b.DurationMinutes)
	assert.Equal(t, models.BookingStatusConfirmed, b.Status)
	assert.Equal(t, "2025-06-11|09:00", b.SlotKey)
	assert.Equal(t, "evt-"+b.ID, b.CalendarEventID)

	stored, err := f.repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "evt-"+b.ID, stored.CalendarEventID)
	assert.Equal(t, []string{b.ID}, f.notifier.created)
	assert.Equal(t, []string{"2025-06"}, f.cache.invalidated)
}

func TestCreateBookingRejectsConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.CreateBooking(ctx, input("2025-06-11", "09:00", "Basic Wash"))
	require.NoError(t, err)

	for _, at := range []string{"9:00 AM", "08:00", "10:00"} {
		_, err = f.svc.CreateBooking(ctx, input("2025-06-11", at, "Basic Wash"))
		var conflict *schedule.SlotConflictError
		assert.ErrorAs(t, err, &conflict, at)
		assert.True(t, IsSlotUnavailable(err))
	}

	_, err = f.svc.CreateBooking(ctx, input("2025-06-11", "10:30", "Basic Wash"))
	assert.NoError(t, err)
}

func TestCreateBookingPassesThroughValidationErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateBooking(ctx, input("2025-06-11", "quarter past", "Basic Wash"))
	assert.ErrorIs(t, err, schedule.ErrInvalidTime)
	_, err = f.svc.CreateBooking(ctx, input("2025-06-16", "10:00", "Basic Wash"))
	assert.ErrorIs(t, err, schedule.ErrClosedDay)
	_, err = f.svc.CreateBooking(ctx, input("2025-06-10", "16:00", "Basic Wash"))
	assert.ErrorIs(t, err, schedule.ErrPastDate)
	assert.Empty(t, f.repo.bookings)
}

func TestCreateBookingMapsIndexViolation(t *testing.T) {
	f := newFixture(t)
	// A row the aggregator cannot see (unreadable time) still holds the key.
	f.repo.bookings["ghost"] = models.Booking{ID: "ghost", Date: "2025-06-11", Time: "??", SlotKey: "2025-06-11|11:00", Status: models.BookingStatusConfirmed}

	_, err := f.svc.CreateBooking(context.Background(), input("2025-06-11", "11:00", "Basic Wash"))
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestCreateBookingLockHandling(t *testing.T) {
	f := newFixture(t)
	f.locker.err = ErrLockBusy
	_, err := f.svc.CreateBooking(context.Background(), input("2025-06-11", "11:00", "Basic Wash"))
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	f.locker.err = errors.New("redis: connection refused")
	b, err := f.svc.CreateBooking(context.Background(), input("2025-06-11", "11:00", "Basic Wash"))
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
}

func TestCreateBookingSurvivesCalendarFailure(t *testing.T) {
	f := newFixture(t)
	f.calendar.err = errors.New("calendar: 403")
	b, err := f.svc.CreateBooking(context.Background(), input("2025-06-11", "11:00", "Basic Wash"))
	require.NoError(t, err)
	assert.Empty(t, b.CalendarEventID)
	assert.Equal(t, []string{b.ID}, f.notifier.created)
}

func TestConcurrentCreateBookingSameSlot(t *testing.T) {
	f := newFixture(t)

	const racers = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.CreateBooking(context.Background(), input("2025-06-12", "13:00", "Basic Wash"))
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
				return
			}
			assert.True(t, IsSlotUnavailable(err), err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, successes)
}

func TestCreateOverrideBookingSkipsChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first, err := f.svc.CreateBooking(ctx, input("2025-06-11", "09:00", "Basic Wash"))
	require.NoError(t, err)

	over, err := f.svc.CreateOverrideBooking(ctx, input("2025-06-11", "09:00", "Basic Wash"))
	require.NoError(t, err)
	assert.True(t, over.Override)
	assert.Empty(t, over.SlotKey)
	assert.NotEqual(t, first.ID, over.ID)

	// closed days and past dates are allowed too
	_, err = f.svc.CreateOverrideBooking(ctx, input("2025-06-16", "19:00", "Basic Wash"))
	assert.NoError(t, err)

	_, err = f.svc.CreateOverrideBooking(ctx, input("2025-06-16", "later", "Basic Wash"))
	assert.ErrorIs(t, err, schedule.ErrInvalidTime)
}

func TestCancelBookingFreesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b, err := f.svc.CreateBooking(ctx, input("2025-06-11", "09:00", "Basic Wash"))
	require.NoError(t, err)

	cancelled, err := f.svc.CancelBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
	assert.Equal(t, []string{"evt-" + b.ID}, f.calendar.deleted)
	assert.Equal(t, []string{b.ID}, f.notifier.cancelled)

	again, err := f.svc.CancelBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, again.Status)
	assert.Len(t, f.notifier.cancelled, 1)

	_, err = f.svc.CreateBooking(ctx, input("2025-06-11", "09:00", "Basic Wash"))
	assert.NoError(t, err)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b, err := f.svc.CreateBooking(ctx, input("2025-06-11", "09:00", "Basic Wash"))
	require.NoError(t, err)

	done, err := f.svc.UpdateStatus(ctx, b.ID, models.BookingStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, done.Status)

	_, err = f.svc.UpdateStatus(ctx, b.ID, models.BookingStatusConfirmed)
	var transition *StatusTransitionError
	assert.ErrorAs(t, err, &transition)

	_, err = f.svc.UpdateStatus(ctx, b.ID, models.BookingStatusCancelled)
	assert.ErrorAs(t, err, &transition)

	_, err = f.svc.UpdateStatus(ctx, b.ID, "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = f.svc.UpdateStatus(ctx, "missing", models.BookingStatusCompleted)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestDeleteBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b, err := f.svc.CreateBooking(ctx, input("2025-06-11", "09:00", "Basic Wash"))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteBooking(ctx, b.ID))
	assert.Equal(t, []string{"evt-" + b.ID}, f.calendar.deleted)
	assert.ErrorIs(t, f.svc.DeleteBooking(ctx, b.ID), ErrBookingNotFound)
}

func TestListBookings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.CreateBooking(ctx, input("2025-06-12", "13:00", "Basic Wash"))
	require.NoError(t, err)
	_, err = f.svc.CreateBooking(ctx, input("2025-06-11", "09:00", "Basic Wash"))
	require.NoError(t, err)

	all, err := f.svc.ListBookings(ctx, "2025-06-01", "2025-06-30")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "2025-06-11", all[0].Date)

	day, err := f.svc.ListBookings(ctx, "2025-06-12", "")
	require.NoError(t, err)
	assert.Len(t, day, 1)

	_, err = f.svc.ListBookings(ctx, "2025-06-30", "2025-06-01")
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = f.svc.ListBookings(ctx, "2024-01-01", "2025-06-01")
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = f.svc.ListBookings(ctx, "June", "")
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestAvailabilityThroughService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	slots, err := f.svc.AvailableSlots(ctx, "2025-06-11", "Full Detail")
	require.NoError(t, err)
	assert.Equal(t, "16:30", slots[len(slots)-1].Time24)

	days, err := f.svc.MonthAvailability(ctx, "2025-06", "Basic Wash")
	require.NoError(t, err)
	require.Len(t, days, 30)
	assert.Len(t, f.cache.entries, 1)

	cached, err := f.svc.MonthAvailability(ctx, "2025-06", "basic wash")
	require.NoError(t, err)
	assert.Equal(t, days, cached)

	_, err = f.svc.MonthAvailability(ctx, "06/2025", "Basic Wash")
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

type countingRecorder map[string]int

func (r countingRecorder) RecordBooking(outcome string) { r[outcome]++ }

func TestCreateBookingRecordsOutcomes(t *testing.T) {
	f := newFixture(t)
	rec := countingRecorder{}
	f.svc.Recorder = rec
	ctx := context.Background()

	_, err := f.svc.CreateBooking(ctx, input("2025-06-11", "09:00", "Basic Wash"))
	require.NoError(t, err)
	_, err = f.svc.CreateBooking(ctx, input("2025-06-11", "09:30", "Basic Wash"))
	require.Error(t, err)
	_, err = f.svc.CreateBooking(ctx, input("2025-06-11", "noonish", "Basic Wash"))
	require.Error(t, err)
	_, err = f.svc.CreateOverrideBooking(ctx, input("2025-06-11", "09:30", "Basic Wash"))
	require.NoError(t, err)

	assert.Equal(t, countingRecorder{
		metrics.OutcomeCreated:  1,
		metrics.OutcomeConflict: 1,
		metrics.OutcomeRejected: 1,
		metrics.OutcomeOverride: 1,
	}, rec)
}

// stallingEngine holds ValidateRequest until its context ends, like a hung source
// that still answers once cut off.
type stallingEngine struct {
	AvailabilityEngine
}

func (e stallingEngine) ValidateRequest(ctx context.Context, date, rawTime, serviceTitle string, now time.Time) (*schedule.ValidatedSlot, error) {
	<-ctx.Done()
	return e.AvailabilityEngine.ValidateRequest(context.Background(), date, rawTime, serviceTitle, now)
}

// ttlLocker records the lease it was asked for.
type ttlLocker struct {
	ttl      time.Duration
	released bool
}

func (l *ttlLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	l.ttl = ttl
	return func() { l.released = true }, nil
}

func TestCreateBookingStaysInsideLockLease(t *testing.T) {
	f := newFixture(t)
	locker := &ttlLocker{}
	f.svc.Locker = locker
	f.svc.Engine = stallingEngine{f.svc.Engine}
	f.svc.LockTTL = 200 * time.Millisecond

	started := time.Now()
	_, err := f.svc.CreateBooking(context.Background(), input("2025-06-11", "10:00", "Basic Wash"))
	elapsed := time.Since(started)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, IsSlotUnavailable(err))
	assert.Equal(t, 200*time.Millisecond, locker.ttl)
	assert.Less(t, elapsed, 200*time.Millisecond)
	assert.True(t, locker.released)
	assert.Empty(t, f.repo.bookings)
}

func TestLockLeaseCoversSectionTimeout(t *testing.T) {
	assert.Equal(t, 24*time.Second, lockedSectionTimeout(30*time.Second))
	// Duration lookup, busy sources and the insert each allow 5s by default.
	assert.Greater(t, lockedSectionTimeout((&DefaultBookingService{}).lockTTL()), 15*time.Second)
}
