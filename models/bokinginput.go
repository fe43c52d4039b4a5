package models

// BookingInput is the public booking form payload.
type BookingInput struct {
	CustomerName  string `json:"customerName" binding:"required"`
	CustomerEmail string `json:"customerEmail" binding:"required,email"`
	CustomerPhone string `json:"customerPhone" binding:"required"`
	Vehicle       string `json:"vehicle"`
	Service       string `json:"service" binding:"required"`
	Date          string `json:"date" binding:"required"` // YYYY-MM-DD
	Time          string `json:"time" binding:"required"` // "9:30 AM", "09:30", "9am"
	Notes         string `json:"notes"`
}

// BookingStatusUpdate is the admin payload for moving a booking through its lifecycle.
type BookingStatusUpdate struct {
	Status string `json:"status" binding:"required"`
}
