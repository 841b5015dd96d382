package services

import (
	"context"

	"mama-doner/models"
)

// Postgres-backed bindings for the lifecycle interfaces.

type PgMenuStore struct{}

func (PgMenuStore) ListActive(ctx context.Context) ([]models.MenuItem, error) {
	return ListActiveMenu(ctx)
}

func (PgMenuStore) ListCategories(ctx context.Context) ([]string, error) {
	return ListCategories(ctx)
}

type PgPendingStore struct{}

func (PgPendingStore) Create(ctx context.Context, items []models.CartItem) (int64, error) {
	return SavePendingCart(ctx, items)
}

func (PgPendingStore) Fetch(ctx context.Context, id int64) ([]models.CartItem, bool, error) {
	return FetchPendingCart(ctx, id)
}

func (PgPendingStore) Delete(ctx context.Context, id int64) error {
	return DeletePendingCart(ctx, id)
}

type PgOrderStore struct{}

func (PgOrderStore) Finalize(ctx context.Context, userID, pendingID int64, items []models.CartItem, totalPrice float64) error {
	return FinalizeOrder(ctx, userID, pendingID, items, totalPrice)
}
