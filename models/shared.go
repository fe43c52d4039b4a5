package models

// EmailPayload is the body of a queued e-mail task.
type EmailPayload struct {
	BookingID string `json:"bookingId"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Kind      string `json:"kind"` // confirmation, reminder, owner-alert, cancellation
}
