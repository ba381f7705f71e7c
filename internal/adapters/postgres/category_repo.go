package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jayakulan/TrashRoute1/internal/core/domain"
)

// CategoryRepo implements ports.WasteCategoryRepository with pgx.
type CategoryRepo struct {
	db *DB
}

// NewCategoryRepo creates a new CategoryRepo.
func NewCategoryRepo(db *DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// List returns every waste category, alphabetically.
func (r *CategoryRepo) List(ctx context.Context) ([]domain.WasteCategory, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, COALESCE(description, ''), COALESCE(guidelines, ''),
		       COALESCE(accepted_items, '{}'), COALESCE(not_accepted_items, '{}'), created_at
		FROM waste_categories
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.WasteCategory
	for rows.Next() {
		var c domain.WasteCategory
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.Guidelines,
			&c.AcceptedItems, &c.NotAcceptedItems, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetByID returns a single waste category.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*domain.WasteCategory, error) {
	var c domain.WasteCategory
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, COALESCE(description, ''), COALESCE(guidelines, ''),
		       COALESCE(accepted_items, '{}'), COALESCE(not_accepted_items, '{}'), created_at
		FROM waste_categories WHERE id = $1
	`, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.Guidelines,
		&c.AcceptedItems, &c.NotAcceptedItems, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("waste category %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
