package services

import (
	"context"
	"encoding/json"
	"fmt"

	"mama-doner/db"
	"mama-doner/models"
)

// SaveOrder appends a finalized order. Rows are never updated or
// deleted afterwards.
func SaveOrder(ctx context.Context, userID int64, items []models.CartItem, totalPrice float64) error {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}
	_, err = db.Pool.Exec(ctx, `
		INSERT INTO orders (user_id, items_json, total_price)
		VALUES ($1, $2, $3)`,
		userID, itemsJSON, totalPrice,
	)
	return err
}

// FinalizeOrder persists the paid order and removes its pending draft
// in one transaction. A crash between the two statements can therefore
// neither lose a paid order nor leave a draft behind for
// double-processing.
func FinalizeOrder(ctx context.Context, userID, pendingID int64, items []models.CartItem, totalPrice float64) error {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO orders (user_id, items_json, total_price)
		VALUES ($1, $2, $3)`,
		userID, itemsJSON, totalPrice,
	); err != nil {
		return fmt.Errorf("save order: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		DELETE FROM pending_orders WHERE id = $1`,
		pendingID,
	); err != nil {
		return fmt.Errorf("delete pending order %d: %w", pendingID, err)
	}
	return tx.Commit(ctx)
}
