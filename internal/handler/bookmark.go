package handler

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/msomdec/recipe-box/internal/service"
)

// BookmarkHandler handles saved-recipe HTTP requests. Every route is
// gated by RequireAuth; the acting user is always the session subject,
// never a client-supplied identifier.
type BookmarkHandler struct {
	bookmarks *service.BookmarkService
}

// NewBookmarkHandler creates a new BookmarkHandler.
func NewBookmarkHandler(bookmarks *service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarks: bookmarks}
}

// HandleSave records a recipe as saved for the current user.
// POST /auth/saved-recipes
// Request:  {"recipeId":123}
// Response: {"ok":true}
func (h *BookmarkHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RecipeID *float64 `json:"recipeId"`
	}
	if err := readJSON(r, &req); err != nil || req.RecipeID == nil {
		writeError(w, http.StatusBadRequest, "Invalid recipeId")
		return
	}
	id := *req.RecipeID
	if id != math.Trunc(id) {
		writeError(w, http.StatusBadRequest, "Invalid recipeId")
		return
	}

	claims := ClaimsFromContext(r.Context())
	if err := h.bookmarks.Save(r.Context(), claims.Subject, int64(id)); err != nil {
		slog.Error("save recipe", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleList returns the current user's saved recipe ids, newest first.
// GET /auth/saved-recipes
// Response: {"recipes":[...]}
func (h *BookmarkHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	ids, err := h.bookmarks.List(r.Context(), claims.Subject)
	if err != nil {
		slog.Error("list saved recipes", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string][]int64{"recipes": ids})
}

// HandleRemove deletes a saved recipe for the current user. Removing a
// recipe that was never saved still succeeds.
// DELETE /auth/saved-recipes/{id}
// Response: {"ok":true}
func (h *BookmarkHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid recipeId")
		return
	}

	claims := ClaimsFromContext(r.Context())
	if err := h.bookmarks.Remove(r.Context(), claims.Subject, id); err != nil {
		slog.Error("remove saved recipe", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
