package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	bookingRepo "detailing/database/repository/bookings"
	"detailing/metrics"
	"detailing/models"
	"detailing/services/schedule"
	"detailing/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// integrationTimeout bounds the best-effort calendar and queue calls after a write.
const integrationTimeout = 10 * time.Second

// CreateBooking runs the authoritative availability check and persists the booking.
// The check and the insert happen under a per-date lock; the unique slot index
// catches anything the lock misses. Both races surface as ErrSlotUnavailable.
// The locked section is cut off before the lock can expire.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, input models.BookingInput) (*models.Booking, error) {
	input = sanitizeInput(input)
	logger := s.logger()
	ttl := s.lockTTL()

	release := func() {}
	if s.Locker != nil {
		r, err := s.Locker.Acquire(ctx, utils.DateLockPrefix+input.Date, ttl)
		switch {
		case errors.Is(err, ErrLockBusy):
			logger.Warn("Booking lock contention", zap.String("date", input.Date))
			s.record(metrics.OutcomeConflict)
			return nil, ErrSlotUnavailable
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			logger.Warn("Booking lock unavailable, relying on slot index", zap.String("date", input.Date), zap.Error(err))
		default:
			release = r
		}
	}
	defer func() { release() }()

	sectionCtx, cancel := context.WithTimeout(ctx, lockedSectionTimeout(ttl))
	defer cancel()

	slot, err := s.Engine.ValidateRequest(sectionCtx, input.Date, input.Time, input.Service, s.now())
	if err == nil && sectionCtx.Err() != nil {
		// Sources cut off by the deadline contribute nothing, so the check is not trustworthy.
		err = fmt.Errorf("booking: availability check for %s did not finish in time: %w", input.Date, sectionCtx.Err())
	}
	if err != nil {
		var conflict *schedule.SlotConflictError
		switch {
		case errors.As(err, &conflict):
			logger.Info("Booking rejected: slot conflict",
				zap.String("date", input.Date), zap.String("time", input.Time), zap.String("conflicts", conflict.Describe()))
			s.record(metrics.OutcomeConflict)
		case schedule.IsUserError(err):
			s.record(metrics.OutcomeRejected)
		default:
			s.record(metrics.OutcomeError)
		}
		return nil, err
	}

	booking := newBooking(input, slot)
	booking.Status = models.BookingStatusConfirmed
	booking.SlotKey = models.SlotKeyFor(slot.Date, slot.Time24)

	if err := s.Repo.Create(sectionCtx, &booking); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			logger.Info("Booking rejected: slot index", zap.String("slotKey", booking.SlotKey))
			s.record(metrics.OutcomeConflict)
			return nil, ErrSlotUnavailable
		}
		s.record(metrics.OutcomeError)
		return nil, err
	}
	release()
	release = func() {}

	s.record(metrics.OutcomeCreated)
	logger.Info("Booking created", zap.String("bookingID", booking.ID), zap.String("date", booking.Date), zap.String("time", booking.Time24))
	s.afterCreate(ctx, &booking, slot.Start, slot.End)
	return &booking, nil
}

// CreateOverrideBooking is the admin path that intentionally skips every availability
// check and may double-book. It claims no slot key, so it never blocks the index.
func (s *DefaultBookingService) CreateOverrideBooking(ctx context.Context, input models.BookingInput) (*models.Booking, error) {
	input = sanitizeInput(input)
	loc := s.Engine.Rules().Location

	if _, err := schedule.ParseDate(input.Date, loc); err != nil {
		return nil, schedule.ErrInvalidDate
	}
	time24, ok := schedule.NormalizeTime(input.Time)
	if !ok {
		return nil, schedule.ErrInvalidTime
	}
	start, err := schedule.ZonedToUTC(input.Date, time24, loc)
	if err != nil {
		return nil, schedule.ErrInvalidTime
	}
	duration := s.Engine.ServiceDuration(ctx, input.Service)

	booking := newBooking(input, &schedule.ValidatedSlot{
		Date:            input.Date,
		Time24:          time24,
		Label:           schedule.FormatInZone(start, loc),
		Start:           start,
		End:             start.Add(duration),
		DurationMinutes: int(duration / time.Minute),
	})
	booking.Status = models.BookingStatusConfirmed
	booking.Override = true

	if err := s.Repo.Create(ctx, &booking); err != nil {
		return nil, err
	}
	s.record(metrics.OutcomeOverride)
	s.logger().Warn("Override booking created", zap.String("bookingID", booking.ID), zap.String("date", booking.Date), zap.String("time", booking.Time24))
	s.afterCreate(ctx, &booking, start, start.Add(duration))
	return &booking, nil
}

// afterCreate mirrors the booking to the calendar, queues e-mails and drops cached
// month answers. Failures are logged; the booking is already stored.
func (s *DefaultBookingService) afterCreate(ctx context.Context, b *models.Booking, start, end time.Time) {
	logger := s.logger()
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), integrationTimeout)
	defer cancel()

	s.invalidateMonth(ctx, b.Date)

	if s.Calendar != nil {
		eventID, err := s.Calendar.InsertBookingEvent(ctx, *b, start, end)
		if err != nil {
			logger.Warn("Calendar event not created", zap.String("bookingID", b.ID), zap.Error(err))
		} else if err := s.Repo.SetCalendarEventID(ctx, b.ID, eventID); err != nil {
			logger.Warn("Calendar event id not stored", zap.String("bookingID", b.ID), zap.Error(err))
		} else {
			b.CalendarEventID = eventID
		}
	}

	if s.Notifier != nil {
		if err := s.Notifier.BookingCreated(ctx, *b, start); err != nil {
			logger.Warn("Booking e-mails not queued", zap.String("bookingID", b.ID), zap.Error(err))
		}
	}
}

func newBooking(input models.BookingInput, slot *schedule.ValidatedSlot) models.Booking {
	return models.Booking{
		ID:              uuid.New().String(),
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		CustomerPhone:   input.CustomerPhone,
		Vehicle:         input.Vehicle,
		Service:         input.Service,
		Date:            slot.Date,
		Time:            slot.Label,
		Time24:          slot.Time24,
		StartUTC:        slot.Start.UTC().Format(time.RFC3339),
		DurationMinutes: slot.DurationMinutes,
		Notes:           input.Notes,
	}
}

func sanitizeInput(in models.BookingInput) models.BookingInput {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerEmail = strings.ToLower(strings.TrimSpace(in.CustomerEmail))
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	in.Vehicle = strings.TrimSpace(in.Vehicle)
	in.Service = strings.TrimSpace(in.Service)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	in.Notes = strings.TrimSpace(in.Notes)
	return in
}
