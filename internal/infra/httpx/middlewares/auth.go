// Package middlewares carries the authentication middleware chain: bearer
// token extraction, verification, and role gating.
package middlewares

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jcmexdev/ecommerce-api/internal/core/domain/identity"
)

// TokenVerifier resolves an opaque bearer credential into a caller
// identity. Implemented by the auth service.
type TokenVerifier interface {
	VerifyToken(token string) (identity.Identity, error)
}

type ctxKey int

const identityKey ctxKey = iota

// IdentityFromContext returns the authenticated caller, if any.
func IdentityFromContext(ctx context.Context) (identity.Identity, bool) {
	ident, ok := ctx.Value(identityKey).(identity.Identity)
	return ident, ok
}

// Authenticate verifies the Authorization header and stores the caller
// identity in the request context. Missing or bad tokens get 401.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				errorJSON(w, http.StatusUnauthorized, "no_token", "no token provided")
				return
			}
			ident, err := verifier.VerifyToken(token)
			if err != nil {
				errorJSON(w, http.StatusUnauthorized, "invalid_token", "invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates a route to callers with the admin role. Must run
// after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := IdentityFromContext(r.Context())
		if !ok || !ident.IsAdmin() {
			errorJSON(w, http.StatusForbidden, "access_denied", "access denied")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func errorJSON(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code, "message": msg})
}
