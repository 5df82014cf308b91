package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/vetcarepro/clinic-api/internal/model"
)

// Sentinel errors the service layer maps onto its own taxonomy.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("duplicate record")
	ErrSlotTaken         = errors.New("slot already booked")
	ErrAlreadyPaid       = errors.New("appointment already paid")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) error
	Get(ctx context.Context, id uuid.UUID) (*model.Client, error)
	GetByEmail(ctx context.Context, email string) (*model.Client, error)
	List(ctx context.Context, includeInactive bool) ([]*model.Client, error)
	// Search matches name, email and legal id, active clients only.
	Search(ctx context.Context, term string) ([]*model.Client, error)
	Update(ctx context.Context, client *model.Client) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type PetRepository interface {
	Create(ctx context.Context, pet *model.Pet) error
	Get(ctx context.Context, id uuid.UUID) (*model.Pet, error)
	// GetOwned returns the pet only when it belongs to the given client.
	GetOwned(ctx context.Context, id, clientID uuid.UUID) (*model.Pet, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*model.Pet, error)
	List(ctx context.Context, includeInactive bool) ([]*model.Pet, error)
	Update(ctx context.Context, pet *model.Pet) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type StaffRepository interface {
	Create(ctx context.Context, user *model.StaffUser) error
	Get(ctx context.Context, id uuid.UUID) (*model.StaffUser, error)
	GetByEmail(ctx context.Context, email string) (*model.StaffUser, error)
	List(ctx context.Context, role *model.Role) ([]*model.StaffUser, error)
	Update(ctx context.Context, user *model.StaffUser) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type ServiceRepository interface {
	Create(ctx context.Context, svc *model.Service) error
	Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
	List(ctx context.Context, activeOnly bool) ([]*model.Service, error)
	Update(ctx context.Context, svc *model.Service) error
}

type AppointmentRepository interface {
	// CreateBooked inserts the appointment only when no non-cancelled
	// appointment holds the same (date, time, vet) slot, and writes the
	// outbox event in the same transaction. Returns ErrSlotTaken otherwise.
	CreateBooked(ctx context.Context, apt *model.Appointment, evt *model.OutboxEvent) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	// BookedTimes returns the slot labels taken by non-cancelled appointments
	// on the date, filtered to the vet when given.
	BookedTimes(ctx context.Context, date string, vetID *uuid.UUID) ([]string, error)
	// Update persists the appointment; when evt is non-nil it is written in
	// the same transaction.
	Update(ctx context.Context, apt *model.Appointment, evt *model.OutboxEvent) error
}

type MedicalRecordRepository interface {
	// CreateAndComplete inserts the record and flips the source appointment
	// to completed in one transaction.
	CreateAndComplete(ctx context.Context, rec *model.MedicalRecord) error
	Get(ctx context.Context, id uuid.UUID) (*model.MedicalRecord, error)
	GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*model.MedicalRecord, error)
	ListByPet(ctx context.Context, petID uuid.UUID) ([]*model.MedicalRecord, error)
	List(ctx context.Context) ([]*model.MedicalRecord, error)
	Update(ctx context.Context, rec *model.MedicalRecord) error
}

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	Get(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, activeOnly bool) ([]*model.Product, error)
	Update(ctx context.Context, p *model.Product) error
}

type InventoryRepository interface {
	// CreateMovement inserts the ledger row and updates the product stock in
	// one transaction.
	CreateMovement(ctx context.Context, mv *model.InventoryMovement) error
	Get(ctx context.Context, id uuid.UUID) (*model.InventoryMovement, error)
	List(ctx context.Context) ([]*model.InventoryMovement, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*model.InventoryMovement, error)
	ListByType(ctx context.Context, t model.MovementType) ([]*model.InventoryMovement, error)
}

type InvoiceRepository interface {
	// CreateWithItems assigns the next invoice number and inserts the invoice
	// and its items in one transaction.
	CreateWithItems(ctx context.Context, inv *model.Invoice) error
	// CreateSettlement performs the whole payment confirmation atomically:
	// flips the appointment to confirmed/paid (ErrAlreadyPaid when it is paid
	// already), assigns the invoice number, inserts invoice, item and payment
	// record, then writes the outbox event with the assigned number filled
	// into the payload.
	CreateSettlement(ctx context.Context, apt *model.Appointment, inv *model.Invoice, pay *model.PaymentRecord, payload model.NotificationPayload) error
	Get(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	List(ctx context.Context) ([]*model.Invoice, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*model.Invoice, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.InvoiceStatus, method *string) (*model.Invoice, error)
	ListPayments(ctx context.Context) ([]*model.PaymentRecord, error)
	ListPaymentsByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]*model.PaymentRecord, error)
	MarkPaymentRefunded(ctx context.Context, paymentID uuid.UUID) error
}

type OutboxRepository interface {
	Create(ctx context.Context, evt *model.OutboxEvent) error
	// GetPendingWithLock fetches up to limit pending events, skipping rows
	// locked by concurrent processors.
	GetPendingWithLock(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	MarkProcessed(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error
}
