package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// BookmarkRepository implements domain.BookmarkRepository using SQLite.
type BookmarkRepository struct {
	db *sql.DB
}

// Save inserts a saved recipe for the user. A repeated save of the same
// recipe is a no-op; the original created_at is kept.
func (r *BookmarkRepository) Save(ctx context.Context, userID string, recipeID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO saved_recipes (user_id, recipe_id, created_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (user_id, recipe_id) DO NOTHING`,
		userID, recipeID, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert saved recipe: %w", err)
	}
	return nil
}

// List returns the user's saved recipe ids, newest save first. Ties on
// created_at fall back to insertion order so ordering stays deterministic.
func (r *BookmarkRepository) List(ctx context.Context, userID string) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT recipe_id FROM saved_recipes
		 WHERE user_id = ?
		 ORDER BY created_at DESC, rowid DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved recipes: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan saved recipe: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Remove deletes a saved recipe for the user. Deleting a recipe that was
// never saved is a no-op.
func (r *BookmarkRepository) Remove(ctx context.Context, userID string, recipeID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM saved_recipes WHERE user_id = ? AND recipe_id = ?`,
		userID, recipeID,
	)
	if err != nil {
		return fmt.Errorf("delete saved recipe: %w", err)
	}
	return nil
}
