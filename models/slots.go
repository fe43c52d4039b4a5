package models

import "time"

// Origin tags for occupied intervals.
const (
	SourceExternalCalendar = "external-calendar"
	SourceInternalBooking  = "internal-booking"
)

// OccupiedInterval is a span during which the shop cannot take another appointment.
type OccupiedInterval struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Source string    `json:"source"`
	Title  string    `json:"title,omitempty"`
	ID     string    `json:"id,omitempty"`
}
