// models/service_type.go
package models

import "time"

// Service represents a detailing package offered by the shop.
type Service struct {
	ID              string    `bson:"id" json:"id"`
	Title           string    `bson:"title" json:"title"` // e.g., "Full Interior Detail"
	Description     string    `bson:"description,omitempty" json:"description,omitempty"`
	Price           float64   `bson:"price" json:"price"`
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"` // in minutes
	ImageURL        string    `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	ImagePublicID   string    `bson:"imagePublicId,omitempty" json:"imagePublicId,omitempty"`
	Active          bool      `bson:"active" json:"active"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ServiceInput is the admin create/update payload for a service.
type ServiceInput struct {
	Title           string  `json:"title" binding:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"gte=0"`
	DurationMinutes int     `json:"durationMinutes" binding:"gte=0"`
	ImageURL        string  `json:"imageUrl"`
	ImagePublicID   string  `json:"imagePublicId"`
	Active          *bool   `json:"active"`
}
