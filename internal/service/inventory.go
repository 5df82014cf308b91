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

// InventoryService keeps the stock ledger. Every change to a product's stock
// goes through a movement so the history can be audited.
type InventoryService struct {
	products  repository.ProductRepository
	movements repository.InventoryRepository
	logger    *logger.Logger
}

func NewInventoryService(products repository.ProductRepository, movements repository.InventoryRepository, log *logger.Logger) *InventoryService {
	return &InventoryService{products: products, movements: movements, logger: log}
}

func (s *InventoryService) CreateProduct(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	p := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Brand:       req.Brand,
		Price:       req.Price,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
	}
	if err := s.products.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("product already exists")
		}
		return nil, apperror.Internal("failed to create product", err)
	}
	return p, nil
}

func (s *InventoryService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, err := s.products.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("product not found")
		}
		return nil, apperror.Internal("failed to load product", err)
	}
	return p, nil
}

func (s *InventoryService) ListProducts(ctx context.Context, activeOnly bool) ([]*model.Product, error) {
	ps, err := s.products.List(ctx, activeOnly)
	if err != nil {
		return nil, apperror.Internal("failed to list products", err)
	}
	return ps, nil
}

// LowStock returns active products at or below their minimum level.
func (s *InventoryService) LowStock(ctx context.Context) ([]*model.Product, error) {
	ps, err := s.products.List(ctx, true)
	if err != nil {
		return nil, apperror.Internal("failed to list products", err)
	}
	low := make([]*model.Product, 0)
	for _, p := range ps {
		if p.Stock <= p.MinStock {
			low = append(low, p)
		}
	}
	return low, nil
}

func (s *InventoryService) UpdateProduct(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Brand != nil {
		p.Brand = *req.Brand
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.MinStock != nil {
		p.MinStock = *req.MinStock
	}
	if req.Active != nil {
		p.Active = *req.Active
	}

	if err := s.products.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("product not found")
		}
		return nil, apperror.Internal("failed to update product", err)
	}
	return p, nil
}

// RecordMovement writes a ledger entry. Stock arithmetic happens inside the
// repository transaction against the locked product row.
func (s *InventoryService) RecordMovement(ctx context.Context, req *model.CreateMovementRequest) (*model.InventoryMovement, error) {
	if !req.Type.Valid() {
		return nil, apperror.Validation("invalid movement type")
	}

	mv := &model.InventoryMovement{
		ProductID:     req.ProductID,
		UserID:        req.UserID,
		Type:          req.Type,
		Quantity:      req.Quantity,
		Reason:        req.Reason,
		UnitPrice:     req.UnitPrice,
		ReferenceID:   req.ReferenceID,
		ReferenceType: req.ReferenceType,
	}

	if err := s.movements.CreateMovement(ctx, mv); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperror.NotFound("product not found")
		case errors.Is(err, repository.ErrInsufficientStock):
			return nil, apperror.Validation("insufficient stock")
		}
		return nil, apperror.Internal("failed to record movement", err)
	}

	s.logger.Info("inventory movement recorded",
		"product_id", mv.ProductID.String(),
		"type", string(mv.Type),
		"stock_after", mv.StockAfter,
	)
	return mv, nil
}

func (s *InventoryService) GetMovement(ctx context.Context, id uuid.UUID) (*model.InventoryMovement, error) {
	mv, err := s.movements.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("movement not found")
		}
		return nil, apperror.Internal("failed to load movement", err)
	}
	return mv, nil
}

func (s *InventoryService) ListMovements(ctx context.Context, productID *uuid.UUID, movementType *model.MovementType) ([]*model.InventoryMovement, error) {
	var (
		mvs []*model.InventoryMovement
		err error
	)
	switch {
	case productID != nil:
		mvs, err = s.movements.ListByProduct(ctx, *productID)
	case movementType != nil:
		if !movementType.Valid() {
			return nil, apperror.Validation("invalid movement type")
		}
		mvs, err = s.movements.ListByType(ctx, *movementType)
	default:
		mvs, err = s.movements.List(ctx)
	}
	if err != nil {
		return nil, apperror.Internal("failed to list movements", err)
	}
	return mvs, nil
}
