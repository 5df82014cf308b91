package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/vetcarepro/clinic-api/internal/model"
	"github.com/vetcarepro/clinic-api/internal/repository"
	"github.com/vetcarepro/clinic-api/pkg/apperror"
	"github.com/vetcarepro/clinic-api/pkg/logger"
)

// CatalogService manages the billable service offerings.
type CatalogService struct {
	services repository.ServiceRepository
	logger   *logger.Logger
}

func NewCatalogService(services repository.ServiceRepository, log *logger.Logger) *CatalogService {
	return &CatalogService{services: services, logger: log}
}

func (s *CatalogService) Create(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error) {
	svc := &model.Service{
		Name:            req.Name,
		Description:     req.Description,
		BasePrice:       req.BasePrice,
		DurationMinutes: req.DurationMinutes,
		Category:        req.Category,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("service already exists")
		}
		return nil, apperror.Internal("failed to create service", err)
	}
	return svc, nil
}

func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	svc, err := s.services.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("service not found")
		}
		return nil, apperror.Internal("failed to load service", err)
	}
	return svc, nil
}

func (s *CatalogService) List(ctx context.Context, activeOnly bool) ([]*model.Service, error) {
	svcs, err := s.services.List(ctx, activeOnly)
	if err != nil {
		return nil, apperror.Internal("failed to list services", err)
	}
	return svcs, nil
}

// Update edits a service. Price changes never touch existing appointments,
// which carry their own snapshot.
func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateServiceRequest) (*model.Service, error) {
	svc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.BasePrice != nil {
		svc.BasePrice = *req.BasePrice
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.Category != nil {
		svc.Category = *req.Category
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := s.services.Update(ctx, svc); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("service not found")
		}
		return nil, apperror.Internal("failed to update service", err)
	}
	return svc, nil
}
