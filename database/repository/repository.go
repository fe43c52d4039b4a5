package repository

import (
	bookingRepo "detailing/database/repository/bookings"
	expenseRepo "detailing/database/repository/expenses"
	serviceRepo "detailing/database/repository/services"
)

// Re-export the BookingRepository interface and constructor.
type BookingRepository = bookingRepo.BookingRepository

var NewMongoBookingRepo = bookingRepo.NewMongoBookingRepo

// Re-export the ServiceRepository interface and constructor.
type ServiceRepository = serviceRepo.ServiceRepository

var NewMongoServiceRepo = serviceRepo.NewMongoServiceRepo

// Re-export the ExpenseRepository interface and constructor.
type ExpenseRepository = expenseRepo.ExpenseRepository

var NewMongoExpenseRepo = expenseRepo.NewMongoExpenseRepo

// EnsureIndexes creates the indexes of every collection.
func EnsureIndexes(bookings BookingRepository, services ServiceRepository, expenses ExpenseRepository) error {
	if err := bookings.EnsureIndexes(); err != nil {
		return err
	}
	if err := services.EnsureIndexes(); err != nil {
		return err
	}
	return expenses.EnsureIndexes()
}
