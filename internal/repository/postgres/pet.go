package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vetcarepro/clinic-api/internal/model"
	"github.com/vetcarepro/clinic-api/internal/repository"
)

const petColumns = `
	id, client_id, name, species, breed, birth_date, sex, color, weight,
	microchip, photo_url, notes, active, created_at, updated_at
`

func (r *petRepository) Create(ctx context.Context, pet *model.Pet) error {
	query := `
		INSERT INTO pets (` + petColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	pet.ID = uuid.New()
	pet.Active = true
	pet.CreatedAt = time.Now()
	pet.UpdatedAt = pet.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		pet.ID,
		pet.ClientID,
		pet.Name,
		pet.Species,
		pet.Breed,
		pet.BirthDate,
		pet.Sex,
		pet.Color,
		pet.Weight,
		pet.Microchip,
		pet.PhotoURL,
		pet.Notes,
		pet.Active,
		pet.CreatedAt,
		pet.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create pet: %w", translateErr(err))
	}
	return nil
}

func (r *petRepository) Get(ctx context.Context, id uuid.UUID) (*model.Pet, error) {
	query := `SELECT ` + petColumns + ` FROM pets WHERE id = $1`
	var pet model.Pet
	if err := r.db.GetContext(ctx, &pet, query, id); err != nil {
		return nil, translateErr(err)
	}
	return &pet, nil
}

func (r *petRepository) GetOwned(ctx context.Context, id, clientID uuid.UUID) (*model.Pet, error) {
	query := `SELECT ` + petColumns + ` FROM pets WHERE id = $1 AND client_id = $2 AND active = true`
	var pet model.Pet
	if err := r.db.GetContext(ctx, &pet, query, id, clientID); err != nil {
		return nil, translateErr(err)
	}
	return &pet, nil
}

func (r *petRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*model.Pet, error) {
	query := `SELECT ` + petColumns + ` FROM pets WHERE client_id = $1 AND active = true ORDER BY name ASC`
	var pets []*model.Pet
	if err := r.db.SelectContext(ctx, &pets, query, clientID); err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	return pets, nil
}

func (r *petRepository) List(ctx context.Context, includeInactive bool) ([]*model.Pet, error) {
	query := `SELECT ` + petColumns + ` FROM pets`
	if !includeInactive {
		query += " WHERE active = true"
	}
	query += " ORDER BY name ASC"

	var pets []*model.Pet
	if err := r.db.SelectContext(ctx, &pets, query); err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	return pets, nil
}

func (r *petRepository) Update(ctx context.Context, pet *model.Pet) error {
	query := `
		UPDATE pets
		SET name = $1, breed = $2, birth_date = $3, sex = $4, color = $5,
		    weight = $6, microchip = $7, photo_url = $8, notes = $9, updated_at = $10
		WHERE id = $11
	`
	pet.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		pet.Name,
		pet.Breed,
		pet.BirthDate,
		pet.Sex,
		pet.Color,
		pet.Weight,
		pet.Microchip,
		pet.PhotoURL,
		pet.Notes,
		pet.UpdatedAt,
		pet.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update pet: %w", err)
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

func (r *petRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE pets SET active = false, updated_at = $1 WHERE id = $2 AND active = true`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to deactivate pet: %w", err)
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
