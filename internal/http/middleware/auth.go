package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/storefront/internal/auth"
)

type contextKey string

const usernameKey = contextKey("username")

// RequireRole accepts bearer tokens signed by tokens whose role claim matches role.
func RequireRole(tokens *auth.Tokens, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "missing or invalid token", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			if got, _ := claims["role"].(string); got != role {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			sub, _ := claims["sub"].(string)
			ctx := context.WithValue(r.Context(), usernameKey, sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func Username(r *http.Request) string {
	if val, ok := r.Context().Value(usernameKey).(string); ok {
		return val
	}
	return ""
}
