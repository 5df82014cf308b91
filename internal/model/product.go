package model

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	Category    string    `db:"category" json:"category,omitempty"`
	Brand       string    `db:"brand" json:"brand,omitempty"`
	Price       float64   `db:"price" json:"price"`
	Stock       int       `db:"stock" json:"stock"`
	MinStock    int       `db:"min_stock" json:"min_stock"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// MovementType is the inventory ledger entry type. "entrada" adds stock,
// "salida" subtracts it, "ajuste" sets the absolute level.
type MovementType string

const (
	MovementIn     MovementType = "entrada"
	MovementOut    MovementType = "salida"
	MovementAdjust MovementType = "ajuste"
)

func (t MovementType) Valid() bool {
	switch t {
	case MovementIn, MovementOut, MovementAdjust:
		return true
	}
	return false
}

// InventoryMovement is a signed stock delta. Each movement snapshots the
// stock level before and after so the ledger can be audited without replay.
type InventoryMovement struct {
	ID            uuid.UUID    `db:"id" json:"id"`
	ProductID     uuid.UUID    `db:"product_id" json:"product_id"`
	UserID        uuid.UUID    `db:"user_id" json:"user_id"`
	Type          MovementType `db:"movement_type" json:"movement_type"`
	Quantity      int          `db:"quantity" json:"quantity"`
	Reason        string       `db:"reason" json:"reason,omitempty"`
	UnitPrice     *float64     `db:"unit_price" json:"unit_price,omitempty"`
	ReferenceID   *uuid.UUID   `db:"reference_id" json:"reference_id,omitempty"`
	ReferenceType *string      `db:"reference_type" json:"reference_type,omitempty"`
	StockBefore   int          `db:"stock_before" json:"stock_before"`
	StockAfter    int          `db:"stock_after" json:"stock_after"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
}

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Stock       int     `json:"stock" binding:"gte=0"`
	MinStock    int     `json:"min_stock" binding:"gte=0"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Brand       *string  `json:"brand"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	MinStock    *int     `json:"min_stock" binding:"omitempty,gte=0"`
	Active      *bool    `json:"active"`
}

type CreateMovementRequest struct {
	ProductID     uuid.UUID    `json:"product_id" binding:"required"`
	UserID        uuid.UUID    `json:"user_id" binding:"required"`
	Type          MovementType `json:"movement_type" binding:"required"`
	Quantity      int          `json:"quantity" binding:"required,gt=0"`
	Reason        string       `json:"reason"`
	UnitPrice     *float64     `json:"unit_price"`
	ReferenceID   *uuid.UUID   `json:"reference_id"`
	ReferenceType *string      `json:"reference_type"`
}
