package booking

import (
	"errors"

	bookingRepo "detailing/database/repository/bookings"
	"detailing/services/schedule"
)

var (
	// ErrSlotUnavailable is what a customer sees for any lost race on a time.
	ErrSlotUnavailable = errors.New("this time is no longer available")
	ErrInvalidStatus   = errors.New("invalid booking status")
	ErrInvalidRange    = errors.New("invalid date range")
	ErrInvalidMonth    = errors.New("invalid month, expected YYYY-MM")
	ErrBookingNotFound = bookingRepo.ErrBookingNotFound
)

// StatusTransitionError reports a lifecycle move that is not allowed.
type StatusTransitionError struct {
	From string
	To   string
}

func (e *StatusTransitionError) Error() string {
	return "cannot move booking from " + e.From + " to " + e.To
}

// IsSlotUnavailable reports whether err means the requested time is taken.
func IsSlotUnavailable(err error) bool {
	var conflict *schedule.SlotConflictError
	return errors.Is(err, ErrSlotUnavailable) || errors.As(err, &conflict)
}
