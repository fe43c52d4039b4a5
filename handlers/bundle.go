package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	AdminKey string

	// Public endpoints
	GetAvailability      gin.HandlerFunc
	GetMonthAvailability gin.HandlerFunc
	CreateBooking        gin.HandlerFunc
	ListActiveServices   gin.HandlerFunc
	Health               gin.HandlerFunc

	// Admin booking endpoints
	ListBookings          gin.HandlerFunc
	GetBooking            gin.HandlerFunc
	UpdateBookingStatus   gin.HandlerFunc
	CancelBooking         gin.HandlerFunc
	DeleteBooking         gin.HandlerFunc
	CreateOverrideBooking gin.HandlerFunc

	// Admin catalog endpoints
	ListAllServices gin.HandlerFunc
	GetService      gin.HandlerFunc
	CreateService   gin.HandlerFunc
	UpdateService   gin.HandlerFunc
	DeleteService   gin.HandlerFunc

	// Admin expense endpoints
	ListExpenses  gin.HandlerFunc
	CreateExpense gin.HandlerFunc
	UpdateExpense gin.HandlerFunc
	DeleteExpense gin.HandlerFunc

	UploadImage gin.HandlerFunc

	// Optional Prometheus wiring; nil disables it.
	Metrics        gin.HandlerFunc
	RequestMetrics gin.HandlerFunc
}

// NewHandlerBundle wires the handler structs into a bundle for route registration.
func NewHandlerBundle(adminKey string, bookings *BookingHandler, catalog *CatalogHandler, expenses *ExpenseHandler, storage *StorageHandler) *HandlerBundle {
	return &HandlerBundle{
		AdminKey: adminKey,

		GetAvailability:      bookings.GetAvailability,
		GetMonthAvailability: bookings.GetMonthAvailability,
		CreateBooking:        bookings.CreateBooking,
		ListActiveServices:   catalog.ListActiveServices,
		Health:               Health,

		ListBookings:          bookings.ListBookings,
		GetBooking:            bookings.GetBooking,
		UpdateBookingStatus:   bookings.UpdateBookingStatus,
		CancelBooking:         bookings.CancelBooking,
		DeleteBooking:         bookings.DeleteBooking,
		CreateOverrideBooking: bookings.CreateOverrideBooking,

		ListAllServices: catalog.ListAllServices,
		GetService:      catalog.GetService,
		CreateService:   catalog.CreateService,
		UpdateService:   catalog.UpdateService,
		DeleteService:   catalog.DeleteService,

		ListExpenses:  expenses.ListExpenses,
		CreateExpense: expenses.CreateExpense,
		UpdateExpense: expenses.UpdateExpense,
		DeleteExpense: expenses.DeleteExpense,

		UploadImage: storage.UploadImage,
	}
}
