package booking

import (
	"context"
	"time"

	bookingRepo "detailing/database/repository/bookings"
	"detailing/models"
	"detailing/services/calendar"
	"detailing/services/notification"
	"detailing/services/schedule"
	"detailing/utils"

	"go.uber.org/zap"
)

// AvailabilityEngine is the scheduling surface the booking flow relies on. *schedule.Engine implements it.
type AvailabilityEngine interface {
	AvailableSlots(ctx context.Context, date string, duration time.Duration, now time.Time) ([]models.CandidateSlot, error)
	MonthAvailability(ctx context.Context, year int, month time.Month, duration time.Duration, now time.Time) ([]models.DayAvailability, error)
	ValidateRequest(ctx context.Context, date, rawTime, serviceTitle string, now time.Time) (*schedule.ValidatedSlot, error)
	ServiceDuration(ctx context.Context, title string) time.Duration
	Rules() schedule.Rules
}

// BookingService defines the booking operations exposed over HTTP.
type BookingService interface {
	AvailableSlots(ctx context.Context, date, serviceTitle string) ([]models.CandidateSlot, error)
	MonthAvailability(ctx context.Context, month, serviceTitle string) ([]models.DayAvailability, error)
	CreateBooking(ctx context.Context, input models.BookingInput) (*models.Booking, error)
	CreateOverrideBooking(ctx context.Context, input models.BookingInput) (*models.Booking, error)
	ListBookings(ctx context.Context, from, to string) ([]models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error)
	CancelBooking(ctx context.Context, id string) (*models.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
}

// BookingRecorder counts booking attempts by outcome.
type BookingRecorder interface {
	RecordBooking(outcome string)
}

// DefaultBookingService implements BookingService.
// Calendar, Notifier, Cache and Recorder are optional; a nil value disables that integration.
type DefaultBookingService struct {
	Engine   AvailabilityEngine
	Repo     bookingRepo.BookingRepository
	Locker   Locker
	Cache    MonthCache
	Calendar calendar.BookingCalendar
	Notifier notification.BookingNotifier
	Recorder BookingRecorder
	Logger   *zap.Logger
	Now      func() time.Time
	// LockTTL overrides utils.DateLockTTL.
	LockTTL time.Duration
}

func (s *DefaultBookingService) lockTTL() time.Duration {
	if s.LockTTL > 0 {
		return s.LockTTL
	}
	return utils.DateLockTTL
}

// lockedSectionTimeout is how long the check and insert may run under a lock of ttl.
// The margin keeps the section inside the lease.
func lockedSectionTimeout(ttl time.Duration) time.Duration {
	return ttl - ttl/5
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) record(outcome string) {
	if s.Recorder != nil {
		s.Recorder.RecordBooking(outcome)
	}
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
