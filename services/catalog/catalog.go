package catalog

import (
	"context"
	"errors"
	"strings"

	serviceRepo "detailing/database/repository/services"
	"detailing/models"
	"detailing/services/storage"

	"go.uber.org/zap"
)

var (
	ErrServiceNotFound = serviceRepo.ErrServiceNotFound
	ErrInvalidService  = errors.New("service title is required")
)

// CatalogService manages the detailing packages customers can book.
type CatalogService interface {
	List(ctx context.Context, activeOnly bool) ([]models.Service, error)
	Get(ctx context.Context, id string) (*models.Service, error)
	Create(ctx context.Context, input models.ServiceInput) (*models.Service, error)
	Update(ctx context.Context, id string, input models.ServiceInput) (*models.Service, error)
	Delete(ctx context.Context, id string) error
}

// DefaultCatalogService implements CatalogService. Images is optional.
type DefaultCatalogService struct {
	Repo   serviceRepo.ServiceRepository
	Images storage.ImageStore
	Logger *zap.Logger
}

func (s *DefaultCatalogService) List(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	return s.Repo.List(ctx, activeOnly)
}

func (s *DefaultCatalogService) Get(ctx context.Context, id string) (*models.Service, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultCatalogService) Create(ctx context.Context, input models.ServiceInput) (*models.Service, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrInvalidService
	}
	service := &models.Service{Active: true}
	apply(service, input)
	if err := s.Repo.Create(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

// Update overwrites the service with input. A replaced image is removed from storage.
func (s *DefaultCatalogService) Update(ctx context.Context, id string, input models.ServiceInput) (*models.Service, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrInvalidService
	}
	service, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldImage := service.ImagePublicID
	apply(service, input)
	if err := s.Repo.Update(ctx, service); err != nil {
		return nil, err
	}
	if oldImage != "" && oldImage != service.ImagePublicID {
		s.dropImage(ctx, oldImage)
	}
	return service, nil
}

func (s *DefaultCatalogService) Delete(ctx context.Context, id string) error {
	service, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	if service.ImagePublicID != "" {
		s.dropImage(ctx, service.ImagePublicID)
	}
	return nil
}

func (s *DefaultCatalogService) dropImage(ctx context.Context, publicID string) {
	if s.Images == nil {
		return
	}
	if err := s.Images.DeleteImage(ctx, publicID); err != nil && s.Logger != nil {
		s.Logger.Warn("Service image not removed", zap.String("publicID", publicID), zap.Error(err))
	}
}

func apply(service *models.Service, input models.ServiceInput) {
	service.Title = strings.TrimSpace(input.Title)
	service.Description = strings.TrimSpace(input.Description)
	service.Price = input.Price
	service.DurationMinutes = input.DurationMinutes
	service.ImageURL = input.ImageURL
	service.ImagePublicID = input.ImagePublicID
	if input.Active != nil {
		service.Active = *input.Active
	}
}
