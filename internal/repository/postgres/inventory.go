package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vetcarepro/clinic-api/internal/model"
	"github.com/vetcarepro/clinic-api/internal/repository"
)

const movementColumns = `
	id, product_id, user_id, movement_type, quantity, reason, unit_price,
	reference_id, reference_type, stock_before, stock_after, created_at
`

// CreateMovement locks the product row, derives the new stock level from the
// movement type and records the before/after snapshot with the ledger entry.
func (r *inventoryRepository) CreateMovement(ctx context.Context, mv *model.InventoryMovement) error {
	mv.ID = uuid.New()
	mv.CreatedAt = time.Now()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var stock int
	lock := `SELECT stock FROM products WHERE id = $1 AND active = true FOR UPDATE`
	if err := tx.GetContext(ctx, &stock, lock, mv.ProductID); err != nil {
		return translateErr(err)
	}

	mv.StockBefore = stock
	switch mv.Type {
	case model.MovementIn:
		mv.StockAfter = stock + mv.Quantity
	case model.MovementOut:
		if stock < mv.Quantity {
			return repository.ErrInsufficientStock
		}
		mv.StockAfter = stock - mv.Quantity
	case model.MovementAdjust:
		mv.StockAfter = mv.Quantity
	default:
		return fmt.Errorf("unknown movement type %q", mv.Type)
	}

	insert := `
		INSERT INTO inventory_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = tx.ExecContext(ctx, insert,
		mv.ID,
		mv.ProductID,
		mv.UserID,
		mv.Type,
		mv.Quantity,
		mv.Reason,
		mv.UnitPrice,
		mv.ReferenceID,
		mv.ReferenceType,
		mv.StockBefore,
		mv.StockAfter,
		mv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create inventory movement: %w", err)
	}

	update := `UPDATE products SET stock = $1, updated_at = $2 WHERE id = $3`
	if _, err := tx.ExecContext(ctx, update, mv.StockAfter, time.Now(), mv.ProductID); err != nil {
		return fmt.Errorf("failed to update product stock: %w", err)
	}

	return tx.Commit()
}

func (r *inventoryRepository) Get(ctx context.Context, id uuid.UUID) (*model.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE id = $1`
	var mv model.InventoryMovement
	if err := r.db.GetContext(ctx, &mv, query, id); err != nil {
		return nil, translateErr(err)
	}
	return &mv, nil
}

func (r *inventoryRepository) List(ctx context.Context) ([]*model.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements ORDER BY created_at DESC`
	var mvs []*model.InventoryMovement
	if err := r.db.SelectContext(ctx, &mvs, query); err != nil {
		return nil, fmt.Errorf("failed to list inventory movements: %w", err)
	}
	return mvs, nil
}

func (r *inventoryRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*model.InventoryMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM inventory_movements
		WHERE product_id = $1
		ORDER BY created_at DESC
	`
	var mvs []*model.InventoryMovement
	if err := r.db.SelectContext(ctx, &mvs, query, productID); err != nil {
		return nil, fmt.Errorf("failed to list inventory movements: %w", err)
	}
	return mvs, nil
}

func (r *inventoryRepository) ListByType(ctx context.Context, t model.MovementType) ([]*model.InventoryMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM inventory_movements
		WHERE movement_type = $1
		ORDER BY created_at DESC
	`
	var mvs []*model.InventoryMovement
	if err := r.db.SelectContext(ctx, &mvs, query, t); err != nil {
		return nil, fmt.Errorf("failed to list inventory movements: %w", err)
	}
	return mvs, nil
}
