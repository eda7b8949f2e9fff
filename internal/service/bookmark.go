package service

import (
	"context"
	"fmt"

	"github.com/msomdec/recipe-box/internal/domain"
)

// BookmarkService manages a user's saved recipes.
type BookmarkService struct {
	bookmarks domain.BookmarkRepository
}

// NewBookmarkService creates a new BookmarkService.
func NewBookmarkService(bookmarks domain.BookmarkRepository) *BookmarkService {
	return &BookmarkService{bookmarks: bookmarks}
}

// Save records a recipe as saved for the user. Saving the same recipe
// twice leaves a single entry.
func (s *BookmarkService) Save(ctx context.Context, userID string, recipeID int64) error {
	if err := s.bookmarks.Save(ctx, userID, recipeID); err != nil {
		return fmt.Errorf("save bookmark: %w", err)
	}
	return nil
}

// List returns the user's saved recipe ids, newest first.
func (s *BookmarkService) List(ctx context.Context, userID string) ([]int64, error) {
	ids, err := s.bookmarks.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return ids, nil
}

// Remove deletes a saved recipe for the user. Removing a recipe that was
// never saved succeeds without effect.
func (s *BookmarkService) Remove(ctx context.Context, userID string, recipeID int64) error {
	if err := s.bookmarks.Remove(ctx, userID, recipeID); err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}
	return nil
}
