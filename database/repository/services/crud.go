// File: database/repository/services/crud.go
package serviceRepo

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

// titleCollation makes title comparisons ignore case but not accents or spacing.
var titleCollation = &options.Collation{Locale: "en", Strength: 2}

func (r *mongoServiceRepo) List(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "price", Value: 1}, {Key: "title", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer cursor.Close(ctx)

	services := []models.Service{}
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

func (r *mongoServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var service models.Service
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&service); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to fetch service %s: %w", id, err)
	}
	return &service, nil
}

func (r *mongoServiceRepo) Create(ctx context.Context, service *models.Service) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if service.ID == "" {
		service.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	service.CreatedAt = now
	service.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, service); err != nil {
		return fmt.Errorf("failed to insert service: %w", err)
	}
	return nil
}

func (r *mongoServiceRepo) Update(ctx context.Context, service *models.Service) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	service.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"title":           service.Title,
		"description":     service.Description,
		"price":           service.Price,
		"durationMinutes": service.DurationMinutes,
		"imageUrl":        service.ImageURL,
		"imagePublicId":   service.ImagePublicID,
		"active":          service.Active,
		"updatedAt":       service.UpdatedAt,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": service.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update service %s: %w", service.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (r *mongoServiceRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete service %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (r *mongoServiceRepo) DurationByTitle(ctx context.Context, title string) (int, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().
		SetCollation(titleCollation).
		SetProjection(bson.M{"durationMinutes": 1})
	var service models.Service
	err := r.coll.FindOne(ctx, bson.M{"title": title}, opts).Decode(&service)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to look up service %q: %w", title, err)
	}
	return service.DurationMinutes, true, nil
}
