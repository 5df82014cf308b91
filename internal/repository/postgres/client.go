package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vetcarepro/clinic-api/internal/model"
	"github.com/vetcarepro/clinic-api/internal/repository"
)

func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	query := `
		INSERT INTO clients (
			id, first_name, last_name, legal_id, email, phone, address,
			password_hash, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	client.ID = uuid.New()
	client.Active = true
	client.CreatedAt = time.Now()
	client.UpdatedAt = client.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		client.ID,
		client.FirstName,
		client.LastName,
		client.LegalID,
		client.Email,
		client.Phone,
		client.Address,
		client.PasswordHash,
		client.Active,
		client.CreatedAt,
		client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", translateErr(err))
	}
	return nil
}

func (r *clientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	query := `
		SELECT id, first_name, last_name, legal_id, email, phone, address,
		       password_hash, active, created_at, updated_at
		FROM clients
		WHERE id = $1
	`
	var client model.Client
	if err := r.db.GetContext(ctx, &client, query, id); err != nil {
		return nil, translateErr(err)
	}
	return &client, nil
}

func (r *clientRepository) GetByEmail(ctx context.Context, email string) (*model.Client, error) {
	query := `
		SELECT id, first_name, last_name, legal_id, email, phone, address,
		       password_hash, active, created_at, updated_at
		FROM clients
		WHERE email = $1 AND active = true
	`
	var client model.Client
	if err := r.db.GetContext(ctx, &client, query, email); err != nil {
		return nil, translateErr(err)
	}
	return &client, nil
}

func (r *clientRepository) List(ctx context.Context, includeInactive bool) ([]*model.Client, error) {
	query := `
		SELECT id, first_name, last_name, legal_id, email, phone, address,
		       password_hash, active, created_at, updated_at
		FROM clients
	`
	if !includeInactive {
		query += " WHERE active = true"
	}
	query += " ORDER BY last_name ASC, first_name ASC"

	var clients []*model.Client
	if err := r.db.SelectContext(ctx, &clients, query); err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

func (r *clientRepository) Search(ctx context.Context, term string) ([]*model.Client, error) {
	query := `
		SELECT id, first_name, last_name, legal_id, email, phone, address,
		       password_hash, active, created_at, updated_at
		FROM clients
		WHERE active = true
		  AND (first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1 OR legal_id ILIKE $1)
		ORDER BY last_name ASC, first_name ASC
	`
	var clients []*model.Client
	if err := r.db.SelectContext(ctx, &clients, query, "%"+term+"%"); err != nil {
		return nil, fmt.Errorf("failed to search clients: %w", err)
	}
	return clients, nil
}

func (r *clientRepository) Update(ctx context.Context, client *model.Client) error {
	query := `
		UPDATE clients
		SET first_name = $1, last_name = $2, email = $3, phone = $4,
		    address = $5, password_hash = $6, updated_at = $7
		WHERE id = $8
	`
	client.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		client.FirstName,
		client.LastName,
		client.Email,
		client.Phone,
		client.Address,
		client.PasswordHash,
		client.UpdatedAt,
		client.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", translateErr(err))
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

func (r *clientRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE clients SET active = false, updated_at = $1 WHERE id = $2 AND active = true`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to deactivate client: %w", err)
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
