package model

import (
	"time"

	"github.com/google/uuid"
)

// Service is a billable offering. Appointments snapshot the price at booking
// time, so later edits here never change what was agreed.
type Service struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Description     string    `db:"description" json:"description,omitempty"`
	BasePrice       float64   `db:"base_price" json:"base_price"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	Category        string    `db:"category" json:"category,omitempty"`
	Active          bool      `db:"active" json:"active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	BasePrice       float64 `json:"base_price" binding:"required,gt=0"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gt=0"`
	Category        string  `json:"category"`
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	BasePrice       *float64 `json:"base_price" binding:"omitempty,gt=0"`
	DurationMinutes *int     `json:"duration_minutes" binding:"omitempty,gt=0"`
	Category        *string  `json:"category"`
	Active          *bool    `json:"active"`
}
