package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// NotificationKind selects the email template rendered by the dispatcher.
type NotificationKind string

const (
	NotificationBookingConfirmation NotificationKind = "booking_confirmation"
	NotificationReminder            NotificationKind = "reminder"
	NotificationPaymentConfirmation NotificationKind = "payment_confirmation"
	NotificationWelcome             NotificationKind = "welcome"
	NotificationCancellation        NotificationKind = "cancellation"
	NotificationReschedule          NotificationKind = "reschedule"
)

// NotificationPayload carries everything a template might need. Fields not
// relevant to a kind are left empty.
type NotificationPayload struct {
	Recipient     string  `json:"recipient"`
	ClientName    string  `json:"client_name"`
	PetName       string  `json:"pet_name,omitempty"`
	ServiceName   string  `json:"service_name,omitempty"`
	VetName       string  `json:"vet_name,omitempty"`
	Date          string  `json:"date,omitempty"`
	Time          string  `json:"time,omitempty"`
	InvoiceNumber string  `json:"invoice_number,omitempty"`
	Amount        float64 `json:"amount,omitempty"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	Reason        string  `json:"reason,omitempty"`
}

type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "pending"
	OutboxStatusProcessed OutboxStatus = "processed"
	OutboxStatusFailed    OutboxStatus = "failed"
)

// OutboxEvent is a notification row written in the same transaction as the
// mutation that triggered it, drained by the outbox processor.
type OutboxEvent struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	EventType    string          `db:"event_type" json:"event_type"`
	Payload      json.RawMessage `db:"payload" json:"payload"`
	Status       OutboxStatus    `db:"status" json:"status"`
	ErrorMessage *string         `db:"error_message" json:"error_message,omitempty"`
	RetryCount   int             `db:"retry_count" json:"retry_count"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	ProcessedAt  *time.Time      `db:"processed_at" json:"processed_at,omitempty"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// NewOutboxEvent builds a pending event for a notification payload.
func NewOutboxEvent(kind NotificationKind, payload NotificationPayload) (*OutboxEvent, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &OutboxEvent{
		ID:        uuid.New(),
		EventType: string(kind),
		Payload:   raw,
		Status:    OutboxStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
