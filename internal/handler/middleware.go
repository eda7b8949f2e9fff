package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/msomdec/recipe-box/internal/domain"
	"github.com/msomdec/recipe-box/internal/service"
)

type contextKey string

const claimsContextKey contextKey = "sessionClaims"

// ClaimsFromContext extracts the verified session claims from the request
// context. Returns nil if the request is unauthenticated.
func ClaimsFromContext(ctx context.Context) *domain.SessionClaims {
	claims, _ := ctx.Value(claimsContextKey).(*domain.SessionClaims)
	return claims
}

// RequireAuth is middleware that protects routes requiring authentication.
// It reads the authToken cookie, verifies the session token, and injects
// the claims into the request context. Returns 401 for unauthenticated
// requests.
func RequireAuth(auth *service.AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, err := auth.VerifyToken(cookie.Value)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSameOrigin rejects state-mutating cross-site requests. Browser
// requests carry an Origin (or at least a Referer) header on such methods;
// if one is present it must match the request host or the configured
// allowed origin. Requests without either header pass, since non-browser
// clients cannot be victims of CSRF.
func RequireSameOrigin(allowedOrigin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			source := r.Header.Get("Origin")
			if source == "" {
				source = r.Header.Get("Referer")
			}
			if source != "" && !originAllowed(source, r.Host, allowedOrigin) {
				writeError(w, http.StatusForbidden, "Cross-site request rejected")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func originAllowed(source, requestHost, allowedOrigin string) bool {
	if allowedOrigin != "" && source == allowedOrigin {
		return true
	}
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	if allowedOrigin != "" {
		if a, err := url.Parse(allowedOrigin); err == nil && u.Host == a.Host {
			return true
		}
	}
	return u.Host == requestHost
}

// SecurityHeaders applies baseline security headers to every response.
// HSTS is added only when the server runs behind TLS in production.
func SecurityHeaders(next http.Handler, hsts bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "same-origin")
		if hsts {
			w.Header().Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		}
		next.ServeHTTP(w, r)
	})
}

// CORS allows the single configured cross-origin source to call the API
// with credentials. With no origin configured the API is same-origin only.
func CORS(allowedOrigin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigin != "" && origin == allowedOrigin {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
