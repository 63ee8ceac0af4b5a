package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"taskdeck/internal/users"
)

type contextKey struct{}

// UserResolver resolves a verified token subject to an account.
type UserResolver interface {
	ByID(ctx context.Context, id string) (*users.User, error)
}

// Middleware returns a chi-compatible middleware that authenticates
// requests via the Authorization bearer header and injects the resolved
// user into the request context.
func Middleware(minter *Minter, resolver UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				unauthorized(w)
				return
			}

			claims, err := minter.Verify(tokenString)
			if err != nil {
				unauthorized(w)
				return
			}

			u, err := resolver.ByID(r.Context(), claims.UserID)
			if err != nil {
				slog.Warn("token subject not resolvable", "user", claims.UserID, "error", err)
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), contextKey{}, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user, or nil outside the middleware.
func UserFromContext(ctx context.Context) *users.User {
	u, _ := ctx.Value(contextKey{}).(*users.User)
	return u
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	http.Error(w, "invalid or missing credentials", http.StatusUnauthorized)
}
