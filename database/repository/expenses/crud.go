// File: database/repository/expenses/crud.go
package expenseRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"detailing/models"
)

func (r *mongoExpenseRepo) List(ctx context.Context, month string) ([]models.Expense, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if month != "" {
		first, err := time.Parse("2006-01", month)
		if err != nil {
			return nil, fmt.Errorf("invalid month %q: %w", month, err)
		}
		filter["date"] = bson.M{
			"$gte": first.Format("2006-01-02"),
			"$lt":  first.AddDate(0, 1, 0).Format("2006-01-02"),
		}
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer cursor.Close(ctx)

	expenses := []models.Expense{}
	if err := cursor.All(ctx, &expenses); err != nil {
		return nil, fmt.Errorf("failed to decode expenses: %w", err)
	}
	return expenses, nil
}

func (r *mongoExpenseRepo) GetByID(ctx context.Context, id string) (*models.Expense, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var expense models.Expense
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&expense); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to fetch expense %s: %w", id, err)
	}
	return &expense, nil
}

func (r *mongoExpenseRepo) Create(ctx context.Context, expense *models.Expense) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	expense.CreatedAt = now
	expense.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, expense); err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

func (r *mongoExpenseRepo) Update(ctx context.Context, expense *models.Expense) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	expense.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"title":     expense.Title,
		"amount":    expense.Amount,
		"category":  expense.Category,
		"date":      expense.Date,
		"notes":     expense.Notes,
		"updatedAt": expense.UpdatedAt,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": expense.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", expense.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

func (r *mongoExpenseRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

func (r *mongoExpenseRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_id")},
		{Keys: bson.D{{Key: "date", Value: -1}}, Options: options.Index().SetName("date_idx")},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create expense indexes: %w", err)
	}
	return nil
}
