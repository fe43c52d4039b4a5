package schedule

import (
	"errors"
	"fmt"
	"time"

	"detailing/models"
)

var (
	ErrInvalidDate  = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidTime  = errors.New("please choose a valid time")
	ErrClosedDay    = errors.New("we are closed on that day")
	ErrPastDate     = errors.New("bookings must be made for a future date")
	ErrOutsideHours = errors.New("requested time is outside business hours")
)

// SlotConflictError reports a requested span that collides with occupied time.
// Its message is safe to show to customers; Intervals is for server logs only.
type SlotConflictError struct {
	Start     time.Time
	End       time.Time
	Intervals []models.OccupiedInterval
}

func (e *SlotConflictError) Error() string {
	return "this time is no longer available"
}

// Describe renders the colliding intervals for diagnostics.
func (e *SlotConflictError) Describe() string {
	out := fmt.Sprintf("%s-%s collides with %d interval(s):", e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339), len(e.Intervals))
	for _, occ := range e.Intervals {
		out += fmt.Sprintf(" [%s %s %s-%s]", occ.Source, occ.ID, occ.Start.Format(time.RFC3339), occ.End.Format(time.RFC3339))
	}
	return out
}

// IsUserError reports whether err is a rejection the customer should see verbatim.
func IsUserError(err error) bool {
	var conflict *SlotConflictError
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidTime) ||
		errors.Is(err, ErrClosedDay) ||
		errors.Is(err, ErrPastDate) ||
		errors.Is(err, ErrOutsideHours) ||
		errors.As(err, &conflict)
}
