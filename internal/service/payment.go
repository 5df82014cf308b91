package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vetcarepro/clinic-api/internal/model"
	"github.com/vetcarepro/clinic-api/internal/payment"
	"github.com/vetcarepro/clinic-api/internal/repository"
	"github.com/vetcarepro/clinic-api/pkg/apperror"
	"github.com/vetcarepro/clinic-api/pkg/logger"
)

type PaymentConfig struct {
	Currency   string
	SuccessURL string
	CancelURL  string
}

// PaymentService drives the hosted checkout flow: open a session for an
// appointment, then settle it once the provider reports the session paid.
type PaymentService struct {
	appointments repository.AppointmentRepository
	clients      repository.ClientRepository
	services     repository.ServiceRepository
	invoices     repository.InvoiceRepository
	provider     payment.Provider
	cfg          PaymentConfig
	logger       *logger.Logger
}

func NewPaymentService(
	appointments repository.AppointmentRepository,
	clients repository.ClientRepository,
	services repository.ServiceRepository,
	invoices repository.InvoiceRepository,
	provider payment.Provider,
	cfg PaymentConfig,
	log *logger.Logger,
) *PaymentService {
	if cfg.Currency == "" {
		cfg.Currency = "clp"
	}
	return &PaymentService{
		appointments: appointments,
		clients:      clients,
		services:     services,
		invoices:     invoices,
		provider:     provider,
		cfg:          cfg,
		logger:       log,
	}
}

// CheckoutSession is what the client needs to redirect to the provider.
type CheckoutSession struct {
	SessionID string  `json:"session_id"`
	URL       string  `json:"url"`
	Amount    float64 `json:"amount"`
}

// CreateSession opens a checkout session charging the booked price plus tax.
func (s *PaymentService) CreateSession(ctx context.Context, appointmentID uuid.UUID) (*CheckoutSession, error) {
	apt, err := s.appointments.Get(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("appointment not found")
		}
		return nil, apperror.Internal("failed to load appointment", err)
	}
	if apt.PaymentStatus == model.PaymentStatusPaid {
		return nil, apperror.Conflict("appointment is already paid")
	}
	if apt.Status == model.AppointmentStatusCancelled {
		return nil, apperror.InvalidState("appointment is cancelled")
	}

	client, err := s.clients.Get(ctx, apt.ClientID)
	if err != nil {
		return nil, apperror.Internal("failed to load client", err)
	}
	svc, err := s.services.Get(ctx, apt.ServiceID)
	if err != nil {
		return nil, apperror.Internal("failed to load service", err)
	}

	// The session charges the bare price snapshot; tax enters at invoicing.
	amount := apt.PriceAtBooking

	session, err := s.provider.CreateSession(ctx, payment.CreateSessionParams{
		Amount:        amount,
		Currency:      s.cfg.Currency,
		Description:   fmt.Sprintf("%s - %s %s", svc.Name, apt.Date, apt.Time),
		Reference:     apt.ID.String(),
		CustomerEmail: client.Email,
		SuccessURL:    s.cfg.SuccessURL,
		CancelURL:     s.cfg.CancelURL,
	})
	if err != nil {
		return nil, apperror.Upstream("payment provider unavailable", err)
	}

	s.logger.Info("checkout session created",
		"appointment_id", apt.ID.String(),
		"session_id", session.ID,
		"amount", amount,
	)
	return &CheckoutSession{SessionID: session.ID, URL: session.URL, Amount: amount}, nil
}

// Confirm settles a completed checkout session. The whole settlement commits
// in one transaction, so a duplicate confirm of the same appointment produces
// exactly one invoice.
func (s *PaymentService) Confirm(ctx context.Context, sessionID string) (*model.Invoice, error) {
	session, err := s.provider.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, apperror.Upstream("payment provider unavailable", err)
	}
	if session.Status != payment.SessionStatusComplete || session.PaymentStatus != "paid" {
		return nil, apperror.InvalidState("payment session is not paid")
	}

	appointmentID, err := uuid.Parse(session.Reference)
	if err != nil {
		return nil, apperror.Validation("session reference is not an appointment", err)
	}

	apt, err := s.appointments.Get(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("appointment not found")
		}
		return nil, apperror.Internal("failed to load appointment", err)
	}

	client, err := s.clients.Get(ctx, apt.ClientID)
	if err != nil {
		return nil, apperror.Internal("failed to load client", err)
	}
	svc, err := s.services.Get(ctx, apt.ServiceID)
	if err != nil {
		return nil, apperror.Internal("failed to load service", err)
	}

	subtotal := apt.PriceAtBooking
	tax := ComputeTax(subtotal)
	inv := &model.Invoice{
		ClientID:      apt.ClientID,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         subtotal + tax,
		PaymentStatus: model.InvoiceStatusPaid,
		PaymentMethod: "card",
		Items: []*model.InvoiceItem{{
			ServiceID:   &apt.ServiceID,
			Description: svc.Name,
			Quantity:    1,
			UnitPrice:   subtotal,
			Subtotal:    subtotal,
		}},
	}
	// The payment row records what the provider actually charged, the bare
	// snapshot. The invoice carries the tax.
	pay := &model.PaymentRecord{
		TransactionID: session.ID,
		Method:        "card",
		Amount:        subtotal,
		Status:        model.PaymentRecordCompleted,
	}

	// The invoice number is assigned inside the settlement transaction, which
	// fills it into the payload before the event is written.
	payload := model.NotificationPayload{
		Recipient:     client.Email,
		ClientName:    client.FullName(),
		Amount:        subtotal,
		PaymentMethod: "card",
	}

	if err := s.invoices.CreateSettlement(ctx, apt, inv, pay, payload); err != nil {
		if errors.Is(err, repository.ErrAlreadyPaid) {
			return nil, apperror.Conflict("appointment is already paid")
		}
		return nil, apperror.Internal("failed to settle payment", err)
	}

	s.logger.Info("payment settled",
		"appointment_id", apt.ID.String(),
		"invoice_number", inv.Number,
		"amount", pay.Amount,
	)
	return inv, nil
}

// Refund returns the money for an invoice's completed provider payment. A
// manual back-office operation; cancelling an appointment never triggers it.
func (s *PaymentService) Refund(ctx context.Context, invoiceID uuid.UUID) (*model.PaymentRecord, error) {
	inv, err := s.invoices.Get(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("invoice not found")
		}
		return nil, apperror.Internal("failed to load invoice", err)
	}
	if inv.PaymentStatus != model.InvoiceStatusPaid {
		return nil, apperror.InvalidState("invoice is not paid")
	}

	pays, err := s.invoices.ListPaymentsByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, apperror.Internal("failed to load payments", err)
	}
	var target *model.PaymentRecord
	for _, p := range pays {
		if p.Status == model.PaymentRecordCompleted && p.TransactionID != "" {
			target = p
			break
		}
	}
	if target == nil {
		return nil, apperror.InvalidState("invoice has no refundable provider payment")
	}

	refund, err := s.provider.Refund(ctx, target.TransactionID, target.Amount)
	if err != nil {
		return nil, apperror.Upstream("payment provider unavailable", err)
	}

	if err := s.invoices.MarkPaymentRefunded(ctx, target.ID); err != nil {
		return nil, apperror.Internal("failed to record refund", err)
	}
	target.Status = model.PaymentRecordRefunded

	s.logger.Info("payment refunded",
		"invoice_id", invoiceID.String(),
		"transaction_id", target.TransactionID,
		"refund_id", refund.ID,
	)
	return target, nil
}
