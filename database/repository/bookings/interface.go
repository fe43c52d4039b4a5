// File: database/repository/bookings/interface.go
package bookingRepo

import (
	"context"
	"errors"

	"detailing/database"
	"detailing/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrSlotTaken is returned when another booking already holds the same date and start time.
	ErrSlotTaken       = errors.New("slot already taken")
	ErrBookingNotFound = errors.New("booking not found")
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	FindByDate(ctx context.Context, date string) ([]models.Booking, error)
	ListByDateRange(ctx context.Context, from, to string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error)
	SetCalendarEventID(ctx context.Context, id, eventID string) error
	Delete(ctx context.Context, id string) error
	EnsureIndexes() error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a BookingRepository on the bookings collection.
func NewMongoBookingRepo() BookingRepository {
	return NewMongoBookingRepoWithCollection(database.DB().Collection("bookings"))
}

func NewMongoBookingRepoWithCollection(coll *mongo.Collection) BookingRepository {
	return &mongoBookingRepo{coll: coll}
}
