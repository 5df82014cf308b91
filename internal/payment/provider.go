package payment

import (
	"context"
)

// SessionStatus is the provider-side state of a checkout session.
type SessionStatus string

const (
	SessionStatusOpen     SessionStatus = "open"
	SessionStatusComplete SessionStatus = "complete"
	SessionStatusExpired  SessionStatus = "expired"
)

// Session is a hosted checkout session at the payment provider.
type Session struct {
	ID            string        `json:"id"`
	URL           string        `json:"url"`
	Status        SessionStatus `json:"status"`
	PaymentStatus string        `json:"payment_status"`
	AmountTotal   float64       `json:"amount_total"`
	Currency      string        `json:"currency"`
	Reference     string        `json:"reference"`
}

// CreateSessionParams describes the checkout to open. Reference carries the
// appointment ID so the session can be tied back on confirmation.
type CreateSessionParams struct {
	Amount        float64
	Currency      string
	Description   string
	Reference     string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

// Refund is the provider's record of money returned for a transaction.
type Refund struct {
	ID            string  `json:"id"`
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
}

// Provider is the hosted checkout surface the orchestrator depends on.
type Provider interface {
	CreateSession(ctx context.Context, params CreateSessionParams) (*Session, error)
	RetrieveSession(ctx context.Context, sessionID string) (*Session, error)
	Refund(ctx context.Context, transactionID string, amount float64) (*Refund, error)
}
