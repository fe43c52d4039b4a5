package models

import "time"

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Booking represents a customer appointment stored in the bookings collection.
type Booking struct {
	ID              string    `bson:"id" json:"id"`                                               // Unique booking identifier (UUID)
	CustomerName    string    `bson:"customerName" json:"customerName"`                           // Who booked
	CustomerEmail   string    `bson:"customerEmail" json:"customerEmail"`                         // Used for confirmation/reminder mails
	CustomerPhone   string    `bson:"customerPhone" json:"customerPhone"`                         // Contact number
	Vehicle         string    `bson:"vehicle,omitempty" json:"vehicle,omitempty"`                 // e.g. "2019 Honda Civic"
	Service         string    `bson:"service" json:"service"`                                     // Service title, resolved against the catalog
	Date            string    `bson:"date" json:"date"`                                           // Booking date in "YYYY-MM-DD" format (service zone)
	Time            string    `bson:"time" json:"time"`                                           // Time as displayed/submitted, e.g. "9:30 AM"
	Time24          string    `bson:"time24,omitempty" json:"time24,omitempty"`                   // Normalized "HH:MM"
	StartUTC        string    `bson:"startUtc,omitempty" json:"startUtc,omitempty"`               // RFC3339 instant of the start
	DurationMinutes int       `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"` // Duration resolved at booking time
	Status          string    `bson:"status" json:"status"`                                       // pending, confirmed, completed, cancelled
	SlotKey         string    `bson:"slotKey,omitempty" json:"-"`                                 // "date|time24"; unique while the booking holds its slot
	Override        bool      `bson:"override,omitempty" json:"override,omitempty"`               // Created through the admin double-booking path
	CalendarEventID string    `bson:"calendarEventId,omitempty" json:"calendarEventId,omitempty"`
	Notes           string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SlotKeyFor builds the value guarded by the unique slot index.
func SlotKeyFor(date, time24 string) string {
	return date + "|" + time24
}
