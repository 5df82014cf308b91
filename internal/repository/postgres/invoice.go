package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vetcarepro/clinic-api/internal/model"
	"github.com/vetcarepro/clinic-api/internal/repository"
)

const invoiceColumns = `
	id, client_id, number, subtotal, tax, discount, total, payment_status,
	payment_method, notes, issued_at, created_at, updated_at
`

// nextInvoiceNumber assigns the next monotonic FAC-NNNNNN number. The advisory
// lock serializes concurrent assignments for the lifetime of the transaction.
func nextInvoiceNumber(ctx context.Context, tx *sqlx.Tx) (string, error) {
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext('invoice_number'))`); err != nil {
		return "", fmt.Errorf("failed to acquire invoice number lock: %w", err)
	}
	var seq int
	query := `SELECT COALESCE(MAX(CAST(SUBSTRING(number FROM 5) AS INTEGER)), 0) + 1 FROM invoices`
	if err := tx.GetContext(ctx, &seq, query); err != nil {
		return "", fmt.Errorf("failed to compute invoice number: %w", err)
	}
	return fmt.Sprintf("FAC-%06d", seq), nil
}

func insertInvoiceTx(ctx context.Context, tx *sqlx.Tx, inv *model.Invoice) error {
	insert := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := tx.ExecContext(ctx, insert,
		inv.ID,
		inv.ClientID,
		inv.Number,
		inv.Subtotal,
		inv.Tax,
		inv.Discount,
		inv.Total,
		inv.PaymentStatus,
		inv.PaymentMethod,
		inv.Notes,
		inv.IssuedAt,
		inv.CreatedAt,
		inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert invoice: %w", err)
	}

	itemInsert := `
		INSERT INTO invoice_items (
			id, invoice_id, product_id, service_id, description, quantity,
			unit_price, subtotal
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, item := range inv.Items {
		item.ID = uuid.New()
		item.InvoiceID = inv.ID
		if _, err := tx.ExecContext(ctx, itemInsert,
			item.ID,
			item.InvoiceID,
			item.ProductID,
			item.ServiceID,
			item.Description,
			item.Quantity,
			item.UnitPrice,
			item.Subtotal,
		); err != nil {
			return fmt.Errorf("failed to insert invoice item: %w", err)
		}
	}
	return nil
}

func (r *invoiceRepository) CreateWithItems(ctx context.Context, inv *model.Invoice) error {
	inv.ID = uuid.New()
	now := time.Now()
	inv.IssuedAt = now
	inv.CreatedAt = now
	inv.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	inv.Number, err = nextInvoiceNumber(ctx, tx)
	if err != nil {
		return err
	}
	if err := insertInvoiceTx(ctx, tx, inv); err != nil {
		return err
	}
	return tx.Commit()
}

// CreateSettlement commits the whole payment confirmation in one transaction.
// The guarded appointment update is the idempotency barrier: a second confirm
// of the same appointment flips zero rows and the transaction rolls back.
func (r *invoiceRepository) CreateSettlement(ctx context.Context, apt *model.Appointment, inv *model.Invoice, pay *model.PaymentRecord, payload model.NotificationPayload) error {
	now := time.Now()
	inv.ID = uuid.New()
	inv.IssuedAt = now
	inv.CreatedAt = now
	inv.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	flip := `
		UPDATE appointments
		SET status = 'confirmed', payment_status = 'paid', updated_at = $1
		WHERE id = $2 AND payment_status <> 'paid'
	`
	result, err := tx.ExecContext(ctx, flip, now, apt.ID)
	if err != nil {
		return fmt.Errorf("failed to settle appointment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrAlreadyPaid
	}

	inv.Number, err = nextInvoiceNumber(ctx, tx)
	if err != nil {
		return err
	}
	if err := insertInvoiceTx(ctx, tx, inv); err != nil {
		return err
	}

	pay.ID = uuid.New()
	pay.InvoiceID = inv.ID
	pay.PaidAt = now
	payInsert := `
		INSERT INTO payments (
			id, invoice_id, transaction_id, method, amount, status, paid_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := tx.ExecContext(ctx, payInsert,
		pay.ID,
		pay.InvoiceID,
		pay.TransactionID,
		pay.Method,
		pay.Amount,
		pay.Status,
		pay.PaidAt,
	); err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	// The number only exists at this point, so the event is built here rather
	// than by the caller.
	payload.InvoiceNumber = inv.Number
	evt, err := model.NewOutboxEvent(model.NotificationPaymentConfirmation, payload)
	if err != nil {
		return fmt.Errorf("failed to build notification event: %w", err)
	}
	if err := insertOutboxTx(ctx, tx, evt); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *invoiceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	var inv model.Invoice
	if err := r.db.GetContext(ctx, &inv, query, id); err != nil {
		return nil, translateErr(err)
	}

	items := `
		SELECT id, invoice_id, product_id, service_id, description, quantity,
		       unit_price, subtotal
		FROM invoice_items
		WHERE invoice_id = $1
	`
	if err := r.db.SelectContext(ctx, &inv.Items, items, id); err != nil {
		return nil, fmt.Errorf("failed to get invoice items: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepository) List(ctx context.Context) ([]*model.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY issued_at DESC`
	var invs []*model.Invoice
	if err := r.db.SelectContext(ctx, &invs, query); err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invs, nil
}

func (r *invoiceRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*model.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE client_id = $1 ORDER BY issued_at DESC`
	var invs []*model.Invoice
	if err := r.db.SelectContext(ctx, &invs, query, clientID); err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invs, nil
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.InvoiceStatus, method *string) (*model.Invoice, error) {
	query := `
		UPDATE invoices
		SET payment_status = $1,
		    payment_method = COALESCE($2, payment_method),
		    updated_at = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, status, method, time.Now(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update invoice status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return nil, repository.ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *invoiceRepository) ListPayments(ctx context.Context) ([]*model.PaymentRecord, error) {
	query := `
		SELECT id, invoice_id, transaction_id, method, amount, status, paid_at
		FROM payments
		ORDER BY paid_at DESC
	`
	var pays []*model.PaymentRecord
	if err := r.db.SelectContext(ctx, &pays, query); err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return pays, nil
}

func (r *invoiceRepository) ListPaymentsByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]*model.PaymentRecord, error) {
	query := `
		SELECT id, invoice_id, transaction_id, method, amount, status, paid_at
		FROM payments
		WHERE invoice_id = $1
		ORDER BY paid_at DESC
	`
	var pays []*model.PaymentRecord
	if err := r.db.SelectContext(ctx, &pays, query, invoiceID); err != nil {
		return nil, fmt.Errorf("failed to list invoice payments: %w", err)
	}
	return pays, nil
}

func (r *invoiceRepository) MarkPaymentRefunded(ctx context.Context, paymentID uuid.UUID) error {
	query := `UPDATE payments SET status = 'refunded' WHERE id = $1 AND status <> 'refunded'`
	result, err := r.db.ExecContext(ctx, query, paymentID)
	if err != nil {
		return fmt.Errorf("failed to mark payment refunded: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
