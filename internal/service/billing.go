package service

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"

	"github.com/vetcarepro/clinic-api/internal/model"
	"github.com/vetcarepro/clinic-api/internal/repository"
	"github.com/vetcarepro/clinic-api/pkg/apperror"
	"github.com/vetcarepro/clinic-api/pkg/logger"
)

// ComputeTax rounds the tax amount to the nearest whole currency unit. The
// subtotal itself is never rounded.
func ComputeTax(subtotal float64) float64 {
	return math.Round(subtotal * model.TaxRate)
}

// BillingService issues invoices outside the checkout flow, for walk-ins and
// over-the-counter product sales.
type BillingService struct {
	invoices repository.InvoiceRepository
	clients  repository.ClientRepository
	logger   *logger.Logger
}

func NewBillingService(invoices repository.InvoiceRepository, clients repository.ClientRepository, log *logger.Logger) *BillingService {
	return &BillingService{invoices: invoices, clients: clients, logger: log}
}

// CreateInvoice builds an invoice from line items. The discount is applied to
// the subtotal before tax.
func (s *BillingService) CreateInvoice(ctx context.Context, req *model.CreateInvoiceRequest) (*model.Invoice, error) {
	if _, err := s.clients.Get(ctx, req.ClientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("client not found")
		}
		return nil, apperror.Internal("failed to load client", err)
	}

	var subtotal float64
	items := make([]*model.InvoiceItem, 0, len(req.Items))
	for _, in := range req.Items {
		if in.ProductID != nil && in.ServiceID != nil {
			return nil, apperror.Validation("item references both a product and a service")
		}
		lineTotal := in.Quantity * in.UnitPrice
		items = append(items, &model.InvoiceItem{
			ProductID:   in.ProductID,
			ServiceID:   in.ServiceID,
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			Subtotal:    lineTotal,
		})
		subtotal += lineTotal
	}

	if req.Discount > subtotal {
		return nil, apperror.Validation("discount exceeds subtotal")
	}
	taxable := subtotal - req.Discount
	tax := ComputeTax(taxable)

	inv := &model.Invoice{
		ClientID:      req.ClientID,
		Subtotal:      subtotal,
		Tax:           tax,
		Discount:      req.Discount,
		Total:         taxable + tax,
		PaymentStatus: model.InvoiceStatusPending,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		Items:         items,
	}

	if err := s.invoices.CreateWithItems(ctx, inv); err != nil {
		return nil, apperror.Internal("failed to create invoice", err)
	}

	s.logger.Info("invoice created", "invoice_number", inv.Number, "total", inv.Total)
	return inv, nil
}

func (s *BillingService) Get(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	inv, err := s.invoices.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("invoice not found")
		}
		return nil, apperror.Internal("failed to load invoice", err)
	}
	return inv, nil
}

func (s *BillingService) List(ctx context.Context) ([]*model.Invoice, error) {
	invs, err := s.invoices.List(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to list invoices", err)
	}
	return invs, nil
}

func (s *BillingService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*model.Invoice, error) {
	invs, err := s.invoices.ListByClient(ctx, clientID)
	if err != nil {
		return nil, apperror.Internal("failed to list invoices", err)
	}
	return invs, nil
}

func (s *BillingService) UpdateStatus(ctx context.Context, id uuid.UUID, req *model.UpdateInvoiceStatusRequest) (*model.Invoice, error) {
	if !req.PaymentStatus.Valid() {
		return nil, apperror.Validation("invalid payment status")
	}
	inv, err := s.invoices.UpdateStatus(ctx, id, req.PaymentStatus, req.PaymentMethod)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("invoice not found")
		}
		return nil, apperror.Internal("failed to update invoice", err)
	}
	return inv, nil
}

func (s *BillingService) ListPayments(ctx context.Context) ([]*model.PaymentRecord, error) {
	pays, err := s.invoices.ListPayments(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to list payments", err)
	}
	return pays, nil
}
