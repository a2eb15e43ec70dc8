package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Repository is a database-backed repository for the recipe catalog.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save inserts or updates a recipe for a member, keyed by exact name.
func (r *Repository) Save(ctx context.Context, memberID string, rec Recipe) error {
	if rec.Name == "" {
		return fmt.Errorf("recipe name is required")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO recipes (member_id, name, data, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (member_id, name) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at`,
		memberID, rec.Name, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert recipe %q: %w", rec.Name, err)
	}
	return nil
}

// Get retrieves a recipe by exact name. Returns (nil, nil) when not found.
func (r *Repository) Get(ctx context.Context, memberID, name string) (*Recipe, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM recipes WHERE member_id = ? AND name = ?`,
		memberID, name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe %q: %w", name, err)
	}

	var rec Recipe
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe %q: %w", name, err)
	}
	return &rec, nil
}

// ListForMealPlan returns every recipe in the member's catalog, ordered by
// name. This is the lookup source for protein totals and prep derivation.
func (r *Repository) ListForMealPlan(ctx context.Context, memberID string) ([]Recipe, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT data FROM recipes WHERE member_id = ? ORDER BY name`, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []Recipe
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan recipe row: %w", err)
		}
		var rec Recipe
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recipe row: %w", err)
		}
		recipes = append(recipes, rec)
	}
	return recipes, rows.Err()
}

// Delete removes a recipe from the catalog. Deleting a missing recipe is
// not an error.
func (r *Repository) Delete(ctx context.Context, memberID, name string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM recipes WHERE member_id = ? AND name = ?`, memberID, name)
	if err != nil {
		return fmt.Errorf("failed to delete recipe %q: %w", name, err)
	}
	return nil
}
