package model

import (
	"time"

	"github.com/google/uuid"
)

// Pet belongs to exactly one client and is never transferred.
type Pet struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	ClientID  uuid.UUID  `db:"client_id" json:"client_id"`
	Name      string     `db:"name" json:"name"`
	Species   string     `db:"species" json:"species"`
	Breed     string     `db:"breed" json:"breed,omitempty"`
	BirthDate *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Sex       string     `db:"sex" json:"sex,omitempty"`
	Color     string     `db:"color" json:"color,omitempty"`
	Weight    *float64   `db:"weight" json:"weight,omitempty"`
	Microchip *string    `db:"microchip" json:"microchip,omitempty"`
	PhotoURL  *string    `db:"photo_url" json:"photo_url,omitempty"`
	Notes     string     `db:"notes" json:"notes,omitempty"`
	Active    bool       `db:"active" json:"active"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

type CreatePetRequest struct {
	ClientID  uuid.UUID  `json:"client_id" binding:"required"`
	Name      string     `json:"name" binding:"required"`
	Species   string     `json:"species" binding:"required"`
	Breed     string     `json:"breed"`
	BirthDate *time.Time `json:"birth_date"`
	Sex       string     `json:"sex"`
	Color     string     `json:"color"`
	Weight    *float64   `json:"weight"`
	Microchip *string    `json:"microchip"`
	PhotoURL  *string    `json:"photo_url"`
	Notes     string     `json:"notes"`
}

type UpdatePetRequest struct {
	Name      *string    `json:"name"`
	Breed     *string    `json:"breed"`
	BirthDate *time.Time `json:"birth_date"`
	Sex       *string    `json:"sex"`
	Color     *string    `json:"color"`
	Weight    *float64   `json:"weight"`
	Microchip *string    `json:"microchip"`
	PhotoURL  *string    `json:"photo_url"`
	Notes     *string    `json:"notes"`
}
