// File: database/repository/expenses/interface.go
package expenseRepo

import (
	"context"
	"errors"

	"detailing/database"
	"detailing/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var ErrExpenseNotFound = errors.New("expense not found")

type ExpenseRepository interface {
	// List returns expenses, restricted to a "YYYY-MM" month when month is non-empty.
	List(ctx context.Context, month string) ([]models.Expense, error)
	GetByID(ctx context.Context, id string) (*models.Expense, error)
	Create(ctx context.Context, expense *models.Expense) error
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, id string) error
	EnsureIndexes() error
}

type mongoExpenseRepo struct {
	coll *mongo.Collection
}

func NewMongoExpenseRepo() ExpenseRepository {
	return NewMongoExpenseRepoWithCollection(database.DB().Collection("expenses"))
}

func NewMongoExpenseRepoWithCollection(coll *mongo.Collection) ExpenseRepository {
	return &mongoExpenseRepo{coll: coll}
}
