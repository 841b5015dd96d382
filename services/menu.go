package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"mama-doner/db"
	"mama-doner/models"
)

var (
	ErrInvalidName    = errors.New("invalid menu item name")
	ErrInvalidPrice   = errors.New("invalid price")
	ErrMenuItemExists = errors.New("menu item already exists")
)

// defaultCategories is the last tier of the category fallback chain.
var defaultCategories = []string{"Classic", "Cheese", "Spicy", "Vegan", "Drinks"}

func ListActiveMenu(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, name, price, description, category, emoji, is_active
		FROM menu
		WHERE is_active`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		var mi models.MenuItem
		if err := rows.Scan(&mi.ID, &mi.Name, &mi.Price, &mi.Description, &mi.Category, &mi.Emoji, &mi.IsActive); err != nil {
			return nil, err
		}
		items = append(items, mi)
	}
	return items, rows.Err()
}

// ListCategories resolves categories in three tiers: distinct
// categories of active menu items, then the categories lookup table,
// then a hardcoded default set. It never returns an empty list.
func ListCategories(ctx context.Context) ([]string, error) {
	categories, err := queryStrings(ctx, `
		SELECT DISTINCT category FROM menu
		WHERE is_active AND category <> ''`,
	)
	if err != nil {
		return nil, err
	}
	if len(categories) > 0 {
		return categories, nil
	}

	categories, err = queryStrings(ctx, `SELECT name FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	if len(categories) > 0 {
		return categories, nil
	}

	return append([]string(nil), defaultCategories...), nil
}

func queryStrings(ctx context.Context, sql string) ([]string, error) {
	rows, err := db.Pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		if s != "" {
			out = append(out, s)
		}
	}
	return out, rows.Err()
}

// ParsePrice converts admin input to a price. Anything that is not a
// finite non-negative number is ErrInvalidPrice.
func ParsePrice(s string) (float64, error) {
	p, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0, ErrInvalidPrice
	}
	return p, nil
}

// AddMenuItem inserts a new active menu item. The name must be unique
// (case-sensitive exact match).
func AddMenuItem(ctx context.Context, name string, price float64, description, category, emoji string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return ErrInvalidPrice
	}

	var exists bool
	if err := db.Pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM menu WHERE name = $1)`,
		name,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check menu item: %w", err)
	}
	if exists {
		return ErrMenuItemExists
	}

	_, err := db.Pool.Exec(ctx, `
		INSERT INTO menu (name, price, description, category, emoji)
		VALUES ($1, $2, $3, $4, $5)`,
		name, price, description, category, emoji,
	)
	return err
}

// DeleteMenuItem removes the item by name and reports whether a row
// existed. Not-found is not an error.
func DeleteMenuItem(ctx context.Context, name string) (bool, error) {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM menu WHERE name = $1`, name)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
