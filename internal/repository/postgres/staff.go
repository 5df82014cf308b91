package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vetcarepro/clinic-api/internal/model"
	"github.com/vetcarepro/clinic-api/internal/repository"
)

const staffColumns = `
	id, first_name, last_name, legal_id, email, phone, role,
	password_hash, active, created_at, updated_at
`

func (r *staffRepository) Create(ctx context.Context, user *model.StaffUser) error {
	query := `
		INSERT INTO staff_users (` + staffColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	user.ID = uuid.New()
	user.Active = true
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.FirstName,
		user.LastName,
		user.LegalID,
		user.Email,
		user.Phone,
		user.Role,
		user.PasswordHash,
		user.Active,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create staff user: %w", translateErr(err))
	}
	return nil
}

func (r *staffRepository) Get(ctx context.Context, id uuid.UUID) (*model.StaffUser, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_users WHERE id = $1`
	var user model.StaffUser
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*model.StaffUser, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_users WHERE email = $1 AND active = true`
	var user model.StaffUser
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (r *staffRepository) List(ctx context.Context, role *model.Role) ([]*model.StaffUser, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_users WHERE active = true`
	args := []interface{}{}
	if role != nil {
		query += " AND role = $1"
		args = append(args, *role)
	}
	query += " ORDER BY last_name ASC, first_name ASC"

	var users []*model.StaffUser
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list staff users: %w", err)
	}
	return users, nil
}

func (r *staffRepository) Update(ctx context.Context, user *model.StaffUser) error {
	query := `
		UPDATE staff_users
		SET first_name = $1, last_name = $2, email = $3, phone = $4,
		    role = $5, password_hash = $6, active = $7, updated_at = $8
		WHERE id = $9
	`
	user.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Phone,
		user.Role,
		user.PasswordHash,
		user.Active,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update staff user: %w", translateErr(err))
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

func (r *staffRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE staff_users SET active = false, updated_at = $1 WHERE id = $2 AND active = true`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to deactivate staff user: %w", err)
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
