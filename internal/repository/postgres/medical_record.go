package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vetcarepro/clinic-api/internal/model"
	"github.com/vetcarepro/clinic-api/internal/repository"
)

const medicalRecordColumns = `
	id, pet_id, appointment_id, vet_id, symptoms, diagnosis, treatment,
	medication, weight, temperature, observations, recommendations,
	next_visit, attended_at, created_at, updated_at
`

func (r *medicalRecordRepository) CreateAndComplete(ctx context.Context, rec *model.MedicalRecord) error {
	rec.ID = uuid.New()
	rec.AttendedAt = time.Now()
	rec.CreatedAt = rec.AttendedAt
	rec.UpdatedAt = rec.AttendedAt

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO medical_records (` + medicalRecordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err = tx.ExecContext(ctx, insert,
		rec.ID,
		rec.PetID,
		rec.AppointmentID,
		rec.VetID,
		rec.Symptoms,
		rec.Diagnosis,
		rec.Treatment,
		rec.Medication,
		rec.Weight,
		rec.Temperature,
		rec.Observations,
		rec.Recommendations,
		rec.NextVisit,
		rec.AttendedAt,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create medical record: %w", translateErr(err))
	}

	complete := `UPDATE appointments SET status = 'completed', updated_at = $1 WHERE id = $2`
	if _, err := tx.ExecContext(ctx, complete, time.Now(), rec.AppointmentID); err != nil {
		return fmt.Errorf("failed to complete appointment: %w", err)
	}

	return tx.Commit()
}

func (r *medicalRecordRepository) Get(ctx context.Context, id uuid.UUID) (*model.MedicalRecord, error) {
	query := `SELECT ` + medicalRecordColumns + ` FROM medical_records WHERE id = $1`
	var rec model.MedicalRecord
	if err := r.db.GetContext(ctx, &rec, query, id); err != nil {
		return nil, translateErr(err)
	}
	return &rec, nil
}

func (r *medicalRecordRepository) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*model.MedicalRecord, error) {
	query := `SELECT ` + medicalRecordColumns + ` FROM medical_records WHERE appointment_id = $1`
	var rec model.MedicalRecord
	if err := r.db.GetContext(ctx, &rec, query, appointmentID); err != nil {
		return nil, translateErr(err)
	}
	return &rec, nil
}

func (r *medicalRecordRepository) ListByPet(ctx context.Context, petID uuid.UUID) ([]*model.MedicalRecord, error) {
	query := `
		SELECT ` + medicalRecordColumns + `
		FROM medical_records
		WHERE pet_id = $1
		ORDER BY attended_at DESC
	`
	var recs []*model.MedicalRecord
	if err := r.db.SelectContext(ctx, &recs, query, petID); err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	return recs, nil
}

func (r *medicalRecordRepository) List(ctx context.Context) ([]*model.MedicalRecord, error) {
	query := `SELECT ` + medicalRecordColumns + ` FROM medical_records ORDER BY attended_at DESC`
	var recs []*model.MedicalRecord
	if err := r.db.SelectContext(ctx, &recs, query); err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	return recs, nil
}

func (r *medicalRecordRepository) Update(ctx context.Context, rec *model.MedicalRecord) error {
	query := `
		UPDATE medical_records
		SET symptoms = $1, diagnosis = $2, treatment = $3, medication = $4,
		    weight = $5, temperature = $6, observations = $7,
		    recommendations = $8, next_visit = $9, updated_at = $10
		WHERE id = $11
	`
	rec.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		rec.Symptoms,
		rec.Diagnosis,
		rec.Treatment,
		rec.Medication,
		rec.Weight,
		rec.Temperature,
		rec.Observations,
		rec.Recommendations,
		rec.NextVisit,
		rec.UpdatedAt,
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update medical record: %w", err)
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
