package models

import "time"

// Expense is a business cost tracked from the admin dashboard.
type Expense struct {
	ID        string    `bson:"id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Amount    float64   `bson:"amount" json:"amount"`
	Category  string    `bson:"category,omitempty" json:"category,omitempty"` // e.g. "supplies", "fuel"
	Date      string    `bson:"date" json:"date"`                             // "YYYY-MM-DD"
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ExpenseInput is the admin create/update payload for an expense.
type ExpenseInput struct {
	Title    string  `json:"title" binding:"required"`
	Amount   float64 `json:"amount" binding:"gte=0"`
	Category string  `json:"category"`
	Date     string  `json:"date" binding:"required"`
	Notes    string  `json:"notes"`
}
