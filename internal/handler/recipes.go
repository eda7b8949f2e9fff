package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/msomdec/recipe-box/internal/mealdb"
)

// RecipeHandler proxies recipe lookups to the external catalog and
// returns the upstream payload verbatim. Lookup responses are cached for
// a short while since the catalog is effectively static; the random
// endpoint is never cached.
type RecipeHandler struct {
	client *mealdb.Client
	cache  *bigcache.BigCache
}

// NewRecipeHandler creates a new RecipeHandler around the given client.
func NewRecipeHandler(client *mealdb.Client) *RecipeHandler {
	cache, _ := bigcache.New(context.Background(), bigcache.DefaultConfig(10*time.Minute))
	return &RecipeHandler{client: client, cache: cache}
}

// HandleRandom returns a random recipe from the catalog.
// GET /recipes/random
func (h *RecipeHandler) HandleRandom(w http.ResponseWriter, r *http.Request) {
	data, err := h.client.Random(r.Context())
	if err != nil {
		slog.Error("fetch random recipe", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch random recipe")
		return
	}
	writeRawJSON(w, http.StatusOK, data)
}

// HandleByID returns a single recipe by its catalog id.
// GET /recipes/{id}
func (h *RecipeHandler) HandleByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid recipe id")
		return
	}

	h.serveCached(w, r, "lookup:"+strconv.FormatInt(id, 10), "Failed to fetch recipe by id",
		func(ctx context.Context) ([]byte, error) { return h.client.ByID(ctx, id) })
}

// HandleByCategory returns the recipes in a category.
// GET /recipes/category/{category}
func (h *RecipeHandler) HandleByCategory(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	h.serveCached(w, r, "category:"+category, "Failed to fetch recipes by category",
		func(ctx context.Context) ([]byte, error) { return h.client.ByCategory(ctx, category) })
}

// HandleByArea returns the recipes from a cuisine area.
// GET /recipes/area/{area}
func (h *RecipeHandler) HandleByArea(w http.ResponseWriter, r *http.Request) {
	area := r.PathValue("area")
	h.serveCached(w, r, "area:"+area, "Failed to fetch recipes by area",
		func(ctx context.Context) ([]byte, error) { return h.client.ByArea(ctx, area) })
}

func (h *RecipeHandler) serveCached(w http.ResponseWriter, r *http.Request, key, failMsg string, fetch func(context.Context) ([]byte, error)) {
	if data, err := h.cache.Get(key); err == nil {
		writeRawJSON(w, http.StatusOK, data)
		return
	}

	data, err := fetch(r.Context())
	if err != nil {
		slog.Error("fetch from recipe api", "key", key, "error", err)
		writeError(w, http.StatusInternalServerError, failMsg)
		return
	}

	if err := h.cache.Set(key, data); err != nil {
		slog.Debug("cache recipe payload", "key", key, "error", err)
	}
	writeRawJSON(w, http.StatusOK, data)
}
