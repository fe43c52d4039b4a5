// File: database/repository/services/interface.go
package serviceRepo

import (
	"context"
	"errors"

	"detailing/database"
	"detailing/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var ErrServiceNotFound = errors.New("service not found")

type ServiceRepository interface {
	List(ctx context.Context, activeOnly bool) ([]models.Service, error)
	GetByID(ctx context.Context, id string) (*models.Service, error)
	Create(ctx context.Context, service *models.Service) error
	Update(ctx context.Context, service *models.Service) error
	Delete(ctx context.Context, id string) error
	// DurationByTitle matches title case-insensitively and exactly.
	DurationByTitle(ctx context.Context, title string) (int, bool, error)
	EnsureIndexes() error
}

type mongoServiceRepo struct {
	coll *mongo.Collection
}

func NewMongoServiceRepo() ServiceRepository {
	return NewMongoServiceRepoWithCollection(database.DB().Collection("services"))
}

func NewMongoServiceRepoWithCollection(coll *mongo.Collection) ServiceRepository {
	return &mongoServiceRepo{coll: coll}
}
