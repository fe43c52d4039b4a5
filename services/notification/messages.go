package notification

import (
	"fmt"
	"strings"
	"time"

	"detailing/models"
)

const (
	KindConfirmation = "confirmation"
	KindReminder     = "reminder"
	KindOwnerAlert   = "owner-alert"
	KindCancellation = "cancellation"
)

func whenText(start time.Time, loc *time.Location) string {
	return start.In(loc).Format("Monday, January 2 at 3:04 PM")
}

func confirmationEmail(b models.Booking, start time.Time, loc *time.Location) (string, string) {
	subject := fmt.Sprintf("Your %s is booked for %s", b.Service, start.In(loc).Format("Jan 2"))
	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\n", b.CustomerName)
	fmt.Fprintf(&body, "Thanks for booking a %s. We'll see you %s.\n", b.Service, whenText(start, loc))
	if b.Vehicle != "" {
		fmt.Fprintf(&body, "Vehicle: %s\n", b.Vehicle)
	}
	fmt.Fprintf(&body, "\nIf you need to change anything, just reply to this e-mail.\n\nBooking reference: %s\n", b.ID)
	return subject, body.String()
}

func reminderEmail(b models.Booking, start time.Time, loc *time.Location) (string, string) {
	subject := fmt.Sprintf("Reminder: %s tomorrow", b.Service)
	body := fmt.Sprintf("Hi %s,\n\nA quick reminder that your %s is %s.\n\nBooking reference: %s\n",
		b.CustomerName, b.Service, whenText(start, loc), b.ID)
	return subject, body
}

func ownerAlertEmail(b models.Booking, start time.Time, loc *time.Location) (string, string) {
	subject := fmt.Sprintf("New booking: %s, %s", b.Service, whenText(start, loc))
	body := fmt.Sprintf("Customer: %s\nEmail: %s\nPhone: %s\nVehicle: %s\nNotes: %s\nBooking: %s\n",
		b.CustomerName, b.CustomerEmail, b.CustomerPhone, b.Vehicle, b.Notes, b.ID)
	return subject, body
}

func cancellationEmail(b models.Booking) (string, string) {
	subject := fmt.Sprintf("Your %s on %s was cancelled", b.Service, b.Date)
	body := fmt.Sprintf("Hi %s,\n\nYour booking for %s on %s at %s has been cancelled. Reply to this e-mail to pick a new time.\n\nBooking reference: %s\n",
		b.CustomerName, b.Service, b.Date, b.Time, b.ID)
	return subject, body
}
