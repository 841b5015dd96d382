package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mama-doner/db"
	"mama-doner/models"

	"github.com/jackc/pgx/v5"
)

// SavePendingCart stores the cart as an opaque JSON blob and returns a
// fresh id. BIGSERIAL ids are monotonic and never reused, so a deleted
// draft's payload can never resolve to a different order.
func SavePendingCart(ctx context.Context, items []models.CartItem) (int64, error) {
	cartJSON, err := json.Marshal(items)
	if err != nil {
		return 0, fmt.Errorf("marshal cart: %w", err)
	}
	var id int64
	err = db.Pool.QueryRow(ctx, `
		INSERT INTO pending_orders (cart_json) VALUES ($1)
		RETURNING id`,
		cartJSON,
	).Scan(&id)
	return id, err
}

// FetchPendingCart returns the stored cart and whether the draft still
// exists. A consumed or unknown id is (nil, false, nil).
func FetchPendingCart(ctx context.Context, id int64) ([]models.CartItem, bool, error) {
	var cartJSON []byte
	err := db.Pool.QueryRow(ctx, `
		SELECT cart_json FROM pending_orders WHERE id = $1`,
		id,
	).Scan(&cartJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var items []models.CartItem
	if err := json.Unmarshal(cartJSON, &items); err != nil {
		return nil, false, fmt.Errorf("unmarshal pending cart %d: %w", id, err)
	}
	return items, true, nil
}

// DeletePendingCart is idempotent: deleting an id that is already gone
// is not an error.
func DeletePendingCart(ctx context.Context, id int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM pending_orders WHERE id = $1`, id)
	return err
}

// DeleteExpiredPendingCarts removes drafts older than ttl and returns
// how many were dropped. Abandoned carts otherwise pile up forever.
func DeleteExpiredPendingCarts(ctx context.Context, ttl time.Duration) (int64, error) {
	tag, err := db.Pool.Exec(ctx, `
		DELETE FROM pending_orders WHERE created_at < now() - $1::interval`,
		fmt.Sprintf("%d seconds", int64(ttl.Seconds())),
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
