package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/vetcarepro/clinic-api/internal/model"
	"github.com/vetcarepro/clinic-api/internal/repository"
)

const appointmentColumns = `
	id, client_id, pet_id, vet_id, service_id, appointment_date,
	appointment_time, status, payment_status, reason, price_at_booking,
	notes, created_at, updated_at
`

// CreateBooked holds the one race that matters: two clients grabbing the same
// slot. The insert only lands when no live appointment occupies the
// (date, time, vet) triple, and the partial unique index on the same triple
// backstops it.
func (r *appointmentRepository) CreateBooked(ctx context.Context, apt *model.Appointment, evt *model.OutboxEvent) error {
	apt.ID = uuid.New()
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = apt.CreatedAt

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO appointments (` + appointmentColumns + `)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		WHERE NOT EXISTS (
			SELECT 1 FROM appointments
			WHERE appointment_date = $6
			  AND appointment_time = $7
			  AND status <> 'cancelled'
			  AND ($4::uuid IS NULL OR vet_id = $4)
		)
	`
	result, err := tx.ExecContext(ctx, query,
		apt.ID,
		apt.ClientID,
		apt.PetID,
		apt.VetID,
		apt.ServiceID,
		apt.Date,
		apt.Time,
		apt.Status,
		apt.PaymentStatus,
		apt.Reason,
		apt.PriceAtBooking,
		apt.Notes,
		apt.CreatedAt,
		apt.UpdatedAt,
	)
	if err != nil {
		if translateErr(err) == repository.ErrDuplicate {
			return repository.ErrSlotTaken
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrSlotTaken
	}

	if evt != nil {
		if err := insertOutboxTx(ctx, tx, evt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`
	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, id); err != nil {
		return nil, translateErr(err)
	}
	return &apt, nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if filters != nil {
		if filters.ClientID != nil {
			query += " AND client_id = $" + strconv.Itoa(idx)
			args = append(args, *filters.ClientID)
			idx++
		}
		if filters.PetID != nil {
			query += " AND pet_id = $" + strconv.Itoa(idx)
			args = append(args, *filters.PetID)
			idx++
		}
		if filters.VetID != nil {
			query += " AND vet_id = $" + strconv.Itoa(idx)
			args = append(args, *filters.VetID)
			idx++
		}
		if filters.Status != nil {
			query += " AND status = $" + strconv.Itoa(idx)
			args = append(args, *filters.Status)
			idx++
		}
		if filters.DateFrom != "" {
			query += " AND appointment_date >= $" + strconv.Itoa(idx)
			args = append(args, filters.DateFrom)
			idx++
		}
		if filters.DateTo != "" {
			query += " AND appointment_date <= $" + strconv.Itoa(idx)
			args = append(args, filters.DateTo)
			idx++
		}
	}

	query += " ORDER BY appointment_date DESC, appointment_time DESC"
	if filters != nil && filters.Limit > 0 {
		query += " LIMIT $" + strconv.Itoa(idx)
		args = append(args, filters.Limit)
	}

	var apts []*model.Appointment
	if err := r.db.SelectContext(ctx, &apts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return apts, nil
}

func (r *appointmentRepository) BookedTimes(ctx context.Context, date string, vetID *uuid.UUID) ([]string, error) {
	query := `
		SELECT appointment_time FROM appointments
		WHERE appointment_date = $1 AND status <> 'cancelled'
	`
	args := []interface{}{date}
	if vetID != nil {
		query += " AND vet_id = $2"
		args = append(args, *vetID)
	}

	var times []string
	if err := r.db.SelectContext(ctx, &times, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get booked times: %w", err)
	}
	return times, nil
}

func (r *appointmentRepository) Update(ctx context.Context, apt *model.Appointment, evt *model.OutboxEvent) error {
	apt.UpdatedAt = time.Now()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE appointments
		SET vet_id = $1, service_id = $2, appointment_date = $3,
		    appointment_time = $4, status = $5, payment_status = $6,
		    reason = $7, price_at_booking = $8, notes = $9, updated_at = $10
		WHERE id = $11
	`
	result, err := tx.ExecContext(ctx, query,
		apt.VetID,
		apt.ServiceID,
		apt.Date,
		apt.Time,
		apt.Status,
		apt.PaymentStatus,
		apt.Reason,
		apt.PriceAtBooking,
		apt.Notes,
		apt.UpdatedAt,
		apt.ID,
	)
	if err != nil {
		if translateErr(err) == repository.ErrDuplicate {
			return repository.ErrSlotTaken
		}
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	if evt != nil {
		if err := insertOutboxTx(ctx, tx, evt); err != nil {
			return err
		}
	}
	return tx.Commit()
}
