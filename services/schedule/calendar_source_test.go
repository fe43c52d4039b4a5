package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"detailing/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
)

type stubEvents struct {
	events         []*calendar.Event
	err            error
	gotMin, gotMax time.Time
}

func (s *stubEvents) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]*calendar.Event, error) {
	s.gotMin, s.gotMax = timeMin, timeMax
	return s.events, s.err
}

func TestCalendarSourceConvertsEvents(t *testing.T) {
	loc := halifax(t)
	lister := &stubEvents{events: []*calendar.Event{
		{
			Id:      "timed",
			Summary: "Dentist",
			Start:   &calendar.EventDateTime{DateTime: "2025-06-11T10:00:00-03:00"},
			End:     &calendar.EventDateTime{DateTime: "2025-06-11T11:00:00-03:00"},
		},
		{
			Id:      "allday",
			Summary: "Holiday",
			Start:   &calendar.EventDateTime{Date: "2025-06-11"},
			End:     &calendar.EventDateTime{Date: "2025-06-12"},
		},
		{Id: "cancelled", Status: "cancelled",
			Start: &calendar.EventDateTime{DateTime: "2025-06-11T12:00:00-03:00"},
			End:   &calendar.EventDateTime{DateTime: "2025-06-11T13:00:00-03:00"}},
		{Id: "free", Transparency: "transparent",
			Start: &calendar.EventDateTime{DateTime: "2025-06-11T12:00:00-03:00"},
			End:   &calendar.EventDateTime{DateTime: "2025-06-11T13:00:00-03:00"}},
		{Id: "broken", Start: &calendar.EventDateTime{DateTime: "yesterday"}, End: &calendar.EventDateTime{DateTime: "today"}},
		{Id: "nostart"},
	}}
	src := &CalendarSource{Events: lister, Location: loc}

	got, err := src.FetchForDate(context.Background(), "2025-06-11")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, models.OccupiedInterval{
		Start:  time.Date(2025, 6, 11, 13, 0, 0, 0, time.UTC),
		End:    time.Date(2025, 6, 11, 14, 0, 0, 0, time.UTC),
		Source: models.SourceExternalCalendar,
		Title:  "Dentist",
		ID:     "timed",
	}, got[0])
	assert.Equal(t, time.Date(2025, 6, 11, 3, 0, 0, 0, time.UTC), got[1].Start)
	assert.Equal(t, time.Date(2025, 6, 12, 3, 0, 0, 0, time.UTC), got[1].End)

	dayStart, dayEnd, _ := DayBoundsUTC("2025-06-11", loc)
	assert.Equal(t, dayStart, lister.gotMin)
	assert.Equal(t, dayEnd, lister.gotMax)
}

func TestCalendarSourceSkipsBookingMirrors(t *testing.T) {
	span := func() (*calendar.EventDateTime, *calendar.EventDateTime) {
		return &calendar.EventDateTime{DateTime: "2025-06-11T10:00:00-03:00"},
			&calendar.EventDateTime{DateTime: "2025-06-11T11:00:00-03:00"}
	}
	mirrorStart, mirrorEnd := span()
	personalStart, personalEnd := span()
	otherStart, otherEnd := span()
	lister := &stubEvents{events: []*calendar.Event{
		{
			Id: "mirror", Start: mirrorStart, End: mirrorEnd,
			ExtendedProperties: &calendar.EventExtendedProperties{Private: map[string]string{BookingIDProperty: "bk-cancelled"}},
		},
		{
			Id: "personal", Start: personalStart, End: personalEnd,
			ExtendedProperties: &calendar.EventExtendedProperties{Private: map[string]string{"colour": "red"}},
		},
		{Id: "plain", Start: otherStart, End: otherEnd},
	}}
	src := &CalendarSource{Events: lister, Location: halifax(t)}

	got, err := src.FetchForDate(context.Background(), "2025-06-11")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "personal", got[0].ID)
	assert.Equal(t, "plain", got[1].ID)
}

func TestCalendarSourcePropagatesErrors(t *testing.T) {
	src := &CalendarSource{Events: &stubEvents{err: errors.New("oauth2: token expired")}, Location: halifax(t)}
	_, err := src.FetchForDate(context.Background(), "2025-06-11")
	assert.Error(t, err)

	_, err = src.FetchForDate(context.Background(), "11/06/2025")
	assert.Error(t, err)
}
