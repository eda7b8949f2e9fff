package handler

import (
	"net/http"
	"time"

	"github.com/msomdec/recipe-box/internal/mealdb"
	"github.com/msomdec/recipe-box/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. Signup, login,
// logout, and the recipe proxy are public; everything else requires a
// valid session, and mutating session routes additionally pass the
// same-origin check.
func RegisterRoutes(
	mux *http.ServeMux,
	auth *service.AuthService,
	bookmarks *service.BookmarkService,
	recipes *mealdb.Client,
	cookieSecure bool,
	tokenTTL time.Duration,
	allowedOrigin string,
) {
	authHandler := NewAuthHandler(auth, cookieSecure, tokenTTL)
	bookmarkHandler := NewBookmarkHandler(bookmarks)
	recipeHandler := NewRecipeHandler(recipes)

	protected := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(auth, h)
	}
	protectedMutating := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(auth, RequireSameOrigin(allowedOrigin, h))
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("POST /auth/signup", authHandler.HandleSignup)
	mux.HandleFunc("POST /auth/login", authHandler.HandleLogin)
	mux.HandleFunc("POST /auth/logout", authHandler.HandleLogout)
	mux.Handle("GET /auth/me", protected(authHandler.HandleMe))

	mux.Handle("POST /auth/saved-recipes", protectedMutating(bookmarkHandler.HandleSave))
	mux.Handle("GET /auth/saved-recipes", protected(bookmarkHandler.HandleList))
	mux.Handle("DELETE /auth/saved-recipes/{id}", protectedMutating(bookmarkHandler.HandleRemove))

	mux.HandleFunc("GET /recipes/random", recipeHandler.HandleRandom)
	mux.HandleFunc("GET /recipes/{id}", recipeHandler.HandleByID)
	mux.HandleFunc("GET /recipes/category/{category}", recipeHandler.HandleByCategory)
	mux.HandleFunc("GET /recipes/area/{area}", recipeHandler.HandleByArea)
}
