package domain

import (
	"context"
	"time"
)

// Bookmark is a user's saved reference to a recipe from the external
// catalog. Identity is the (UserID, RecipeID) pair.
type Bookmark struct {
	UserID    string
	RecipeID  int64
	CreatedAt time.Time
}

// BookmarkRepository defines persistence operations for saved recipes.
// Save and Remove are idempotent: repeating either with the same
// arguments produces the same end state without erroring.
type BookmarkRepository interface {
	Save(ctx context.Context, userID string, recipeID int64) error
	List(ctx context.Context, userID string) ([]int64, error)
	Remove(ctx context.Context, userID string, recipeID int64) error
}
