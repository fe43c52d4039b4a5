package booking

import (
	"context"
	"time"

	"detailing/models"
	"detailing/services/schedule"

	"go.uber.org/zap"
)

// maxListDays caps the admin range query.
const maxListDays = 366

// allowedTransitions lists the lifecycle moves an admin may make.
var allowedTransitions = map[string]map[string]bool{
	models.BookingStatusPending: {
		models.BookingStatusConfirmed: true,
		models.BookingStatusCancelled: true,
	},
	models.BookingStatusConfirmed: {
		models.BookingStatusCompleted: true,
		models.BookingStatusCancelled: true,
	},
}

// ListBookings returns bookings with from <= date <= to. An empty to means the single day from.
func (s *DefaultBookingService) ListBookings(ctx context.Context, from, to string) ([]models.Booking, error) {
	if to == "" {
		to = from
	}
	fromDay, err := time.Parse(schedule.DateLayout, from)
	if err != nil {
		return nil, ErrInvalidRange
	}
	toDay, err := time.Parse(schedule.DateLayout, to)
	if err != nil || toDay.Before(fromDay) || toDay.Sub(fromDay) > maxListDays*24*time.Hour {
		return nil, ErrInvalidRange
	}
	return s.Repo.ListByDateRange(ctx, from, to)
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return s.Repo.GetByID(ctx, id)
}

// UpdateStatus moves a booking along its lifecycle. Cancelling goes through CancelBooking.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error) {
	switch status {
	case models.BookingStatusPending, models.BookingStatusConfirmed, models.BookingStatusCompleted:
	case models.BookingStatusCancelled:
		return s.CancelBooking(ctx, id)
	default:
		return nil, ErrInvalidStatus
	}

	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == status {
		return current, nil
	}
	if !allowedTransitions[current.Status][status] {
		return nil, &StatusTransitionError{From: current.Status, To: status}
	}
	updated, err := s.Repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.logger().Info("Booking status updated", zap.String("bookingID", id), zap.String("from", current.Status), zap.String("to", status))
	return updated, nil
}

// CancelBooking frees the booking's time: the slot key is released, the calendar event
// removed and the customer told. Cancelling twice is a no-op.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, id string) (*models.Booking, error) {
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == models.BookingStatusCancelled {
		return current, nil
	}
	if current.Status == models.BookingStatusCompleted {
		return nil, &StatusTransitionError{From: current.Status, To: models.BookingStatusCancelled}
	}

	updated, err := s.Repo.UpdateStatus(ctx, id, models.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}
	s.logger().Info("Booking cancelled", zap.String("bookingID", id))

	s.afterRelease(ctx, updated)
	if s.Notifier != nil {
		if err := s.Notifier.BookingCancelled(ctx, *updated); err != nil {
			s.logger().Warn("Cancellation e-mail not queued", zap.String("bookingID", id), zap.Error(err))
		}
	}
	return updated, nil
}

// DeleteBooking removes the record entirely, along with its calendar event.
func (s *DefaultBookingService) DeleteBooking(ctx context.Context, id string) error {
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger().Info("Booking deleted", zap.String("bookingID", id))
	s.afterRelease(ctx, current)
	return nil
}

// afterRelease undoes the side effects of afterCreate, best-effort.
func (s *DefaultBookingService) afterRelease(ctx context.Context, b *models.Booking) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), integrationTimeout)
	defer cancel()

	s.invalidateMonth(ctx, b.Date)
	if s.Calendar != nil && b.CalendarEventID != "" {
		if err := s.Calendar.DeleteEvent(ctx, b.CalendarEventID); err != nil {
			s.logger().Warn("Calendar event not removed", zap.String("bookingID", b.ID), zap.Error(err))
		}
	}
}
