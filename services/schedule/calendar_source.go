package schedule

import (
	"context"
	"time"

	"detailing/models"

	"google.golang.org/api/calendar/v3"
)

// EventLister lists the calendar events whose span intersects [timeMin, timeMax].
type EventLister interface {
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]*calendar.Event, error)
}

// BookingIDProperty is the private extended property that marks an event as a
// mirror of a stored booking.
const BookingIDProperty = "bookingId"

// CalendarSource exposes the shop's external calendar as a BusySource.
// Events mirrored from stored bookings are skipped: the booking store owns
// them, so a mirror left behind by a failed delete never blocks a freed slot.
type CalendarSource struct {
	Events   EventLister
	Location *time.Location
}

func (s *CalendarSource) Name() string { return models.SourceExternalCalendar }

func (s *CalendarSource) FetchForDate(ctx context.Context, date string) ([]models.OccupiedInterval, error) {
	dayStart, dayEnd, err := DayBoundsUTC(date, s.Location)
	if err != nil {
		return nil, err
	}
	events, err := s.Events.ListEvents(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	intervals := make([]models.OccupiedInterval, 0, len(events))
	for _, e := range events {
		if e == nil || e.Status == "cancelled" || e.Transparency == "transparent" || mirrorsBooking(e) {
			continue
		}
		start, end, ok := eventSpan(e, s.Location)
		if !ok {
			continue
		}
		intervals = append(intervals, models.OccupiedInterval{
			Start:  start,
			End:    end,
			Source: models.SourceExternalCalendar,
			Title:  e.Summary,
			ID:     e.Id,
		})
	}
	return intervals, nil
}

func mirrorsBooking(e *calendar.Event) bool {
	return e.ExtendedProperties != nil && e.ExtendedProperties.Private[BookingIDProperty] != ""
}

// eventSpan handles timed events (RFC3339 DateTime) and all-day events, whose
// Date values are civil dates in the shop's zone with an exclusive end.
func eventSpan(e *calendar.Event, loc *time.Location) (time.Time, time.Time, bool) {
	if e.Start == nil || e.End == nil {
		return time.Time{}, time.Time{}, false
	}
	if e.Start.DateTime != "" && e.End.DateTime != "" {
		start, err := time.Parse(time.RFC3339, e.Start.DateTime)
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
		end, err := time.Parse(time.RFC3339, e.End.DateTime)
		if err != nil || !end.After(start) {
			return time.Time{}, time.Time{}, false
		}
		return start.UTC(), end.UTC(), true
	}
	if e.Start.Date != "" && e.End.Date != "" {
		start, err := time.ParseInLocation(DateLayout, e.Start.Date, loc)
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
		end, err := time.ParseInLocation(DateLayout, e.End.Date, loc)
		if err != nil || !end.After(start) {
			return time.Time{}, time.Time{}, false
		}
		return start.UTC(), end.UTC(), true
	}
	return time.Time{}, time.Time{}, false
}
