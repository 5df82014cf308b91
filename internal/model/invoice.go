package model

import (
	"time"

	"github.com/google/uuid"
)

// TaxRate is the VAT applied to every invoice. The tax amount is rounded to
// the nearest whole currency unit before it is added to the total.
const TaxRate = 0.19

type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

type Invoice struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	ClientID      uuid.UUID     `db:"client_id" json:"client_id"`
	Number        string        `db:"number" json:"number"`
	Subtotal      float64       `db:"subtotal" json:"subtotal"`
	Tax           float64       `db:"tax" json:"tax"`
	Discount      float64       `db:"discount" json:"discount"`
	Total         float64       `db:"total" json:"total"`
	PaymentStatus InvoiceStatus `db:"payment_status" json:"payment_status"`
	PaymentMethod string        `db:"payment_method" json:"payment_method,omitempty"`
	Notes         string        `db:"notes" json:"notes,omitempty"`
	IssuedAt      time.Time     `db:"issued_at" json:"issued_at"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`

	Items []*InvoiceItem `db:"-" json:"items,omitempty"`
}

// InvoiceItem references either a product or a service, never both.
type InvoiceItem struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	InvoiceID   uuid.UUID  `db:"invoice_id" json:"invoice_id"`
	ProductID   *uuid.UUID `db:"product_id" json:"product_id,omitempty"`
	ServiceID   *uuid.UUID `db:"service_id" json:"service_id,omitempty"`
	Description string     `db:"description" json:"description"`
	Quantity    float64    `db:"quantity" json:"quantity"`
	UnitPrice   float64    `db:"unit_price" json:"unit_price"`
	Subtotal    float64    `db:"subtotal" json:"subtotal"`
}

type PaymentRecordStatus string

const (
	PaymentRecordCompleted PaymentRecordStatus = "completed"
	PaymentRecordFailed    PaymentRecordStatus = "failed"
	PaymentRecordRefunded  PaymentRecordStatus = "refunded"
)

// PaymentRecord is one settlement attempt against an invoice.
type PaymentRecord struct {
	ID            uuid.UUID           `db:"id" json:"id"`
	InvoiceID     uuid.UUID           `db:"invoice_id" json:"invoice_id"`
	TransactionID string              `db:"transaction_id" json:"transaction_id"`
	Method        string              `db:"method" json:"method"`
	Amount        float64             `db:"amount" json:"amount"`
	Status        PaymentRecordStatus `db:"status" json:"status"`
	PaidAt        time.Time           `db:"paid_at" json:"paid_at"`
}

type InvoiceItemInput struct {
	ProductID   *uuid.UUID `json:"product_id"`
	ServiceID   *uuid.UUID `json:"service_id"`
	Description string     `json:"description" binding:"required"`
	Quantity    float64    `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64    `json:"unit_price" binding:"required,gte=0"`
}

type CreateInvoiceRequest struct {
	ClientID      uuid.UUID          `json:"client_id" binding:"required"`
	Items         []InvoiceItemInput `json:"items" binding:"required,min=1,dive"`
	Discount      float64            `json:"discount" binding:"gte=0"`
	PaymentMethod string             `json:"payment_method"`
	Notes         string             `json:"notes"`
}

type UpdateInvoiceStatusRequest struct {
	PaymentStatus InvoiceStatus `json:"payment_status" binding:"required"`
	PaymentMethod *string       `json:"payment_method"`
}
