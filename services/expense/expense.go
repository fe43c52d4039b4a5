package expense

import (
	"context"
	"errors"
	"strings"
	"time"

	expenseRepo "detailing/database/repository/expenses"
	"detailing/models"
)

var (
	ErrExpenseNotFound = expenseRepo.ErrExpenseNotFound
	ErrInvalidExpense  = errors.New("expense needs a title, a non-negative amount and a YYYY-MM-DD date")
	ErrInvalidMonth    = errors.New("invalid month, expected YYYY-MM")
)

// ExpenseService tracks business costs for the admin dashboard.
type ExpenseService interface {
	List(ctx context.Context, month string) ([]models.Expense, error)
	Create(ctx context.Context, input models.ExpenseInput) (*models.Expense, error)
	Update(ctx context.Context, id string, input models.ExpenseInput) (*models.Expense, error)
	Delete(ctx context.Context, id string) error
}

type DefaultExpenseService struct {
	Repo expenseRepo.ExpenseRepository
}

func (s *DefaultExpenseService) List(ctx context.Context, month string) ([]models.Expense, error) {
	if month != "" {
		if _, err := time.Parse("2006-01", month); err != nil {
			return nil, ErrInvalidMonth
		}
	}
	return s.Repo.List(ctx, month)
}

func (s *DefaultExpenseService) Create(ctx context.Context, input models.ExpenseInput) (*models.Expense, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	e := &models.Expense{}
	apply(e, input)
	if err := s.Repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *DefaultExpenseService) Update(ctx context.Context, id string, input models.ExpenseInput) (*models.Expense, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	e, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(e, input)
	if err := s.Repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *DefaultExpenseService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func validate(input models.ExpenseInput) error {
	if strings.TrimSpace(input.Title) == "" || input.Amount < 0 {
		return ErrInvalidExpense
	}
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(input.Date)); err != nil {
		return ErrInvalidExpense
	}
	return nil
}

func apply(e *models.Expense, input models.ExpenseInput) {
	e.Title = strings.TrimSpace(input.Title)
	e.Amount = input.Amount
	e.Category = strings.ToLower(strings.TrimSpace(input.Category))
	e.Date = strings.TrimSpace(input.Date)
	e.Notes = strings.TrimSpace(input.Notes)
}
