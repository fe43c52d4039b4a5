package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"detailing/models"
	"detailing/services/schedule"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// BookingCalendar is the calendar surface the booking flow writes to.
type BookingCalendar interface {
	InsertBookingEvent(ctx context.Context, booking models.Booking, start, end time.Time) (string, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

// Client wraps one Google calendar.
type Client struct {
	svc        *gcal.Service
	calendarID string
	timeZone   string
}

// NewClient authenticates with a service account credentials file.
func NewClient(ctx context.Context, credentialsFile, calendarID, timeZone string) (*Client, error) {
	if credentialsFile == "" {
		return nil, errors.New("calendar: GOOGLE_CREDENTIALS_FILE not set")
	}
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarEventsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("calendar: failed to create service: %w", err)
	}
	return &Client{svc: svc, calendarID: calendarID, timeZone: timeZone}, nil
}

// ListEvents returns single (expanded) events overlapping [timeMin, timeMax], following pagination.
func (c *Client) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]*gcal.Event, error) {
	var events []*gcal.Event
	call := c.svc.Events.List(c.calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		ShowDeleted(false).
		OrderBy("startTime").
		MaxResults(250)

	err := call.Pages(ctx, func(page *gcal.Events) error {
		events = append(events, page.Items...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("calendar: failed to list events: %w", err)
	}
	return events, nil
}

// InsertBookingEvent writes a booking to the calendar and returns the event ID.
func (c *Client) InsertBookingEvent(ctx context.Context, booking models.Booking, start, end time.Time) (string, error) {
	event := &gcal.Event{
		Summary:     fmt.Sprintf("%s - %s", booking.Service, booking.CustomerName),
		Description: eventDescription(booking),
		Start:       &gcal.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: c.timeZone},
		End:         &gcal.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: c.timeZone},
		ExtendedProperties: &gcal.EventExtendedProperties{
			Private: map[string]string{schedule.BookingIDProperty: booking.ID},
		},
	}
	created, err := c.svc.Events.Insert(c.calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("calendar: failed to insert event: %w", err)
	}
	return created.Id, nil
}

// DeleteEvent removes an event. Events already gone are not an error.
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	err := c.svc.Events.Delete(c.calendarID, eventID).Context(ctx).Do()
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("calendar: failed to delete event %s: %w", eventID, err)
	}
	return nil
}

func eventDescription(b models.Booking) string {
	desc := fmt.Sprintf("Customer: %s\nPhone: %s\nEmail: %s", b.CustomerName, b.CustomerPhone, b.CustomerEmail)
	if b.Vehicle != "" {
		desc += "\nVehicle: " + b.Vehicle
	}
	if b.Notes != "" {
		desc += "\nNotes: " + b.Notes
	}
	return desc + "\nBooking: " + b.ID
}
