// Package middleware resolves the caller principal from the Authorization
// header and gates the admin surface on the role claim.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/rudenman/Bank-REST/internal/models"
)

type contextKey int

const principalKey contextKey = iota

// Principal is the resolved caller identity handed to the business layer.
type Principal struct {
	Username string
	Role     models.UserRole
}

// FromContext extracts the principal resolved by AuthMiddleware.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// AuthMiddleware validates the bearer token and injects the principal into
// the request context.
func AuthMiddleware(jwtSecret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenString == "" {
				http.Error(w, "Missing or invalid Authorization header", http.StatusUnauthorized)
				return
			}

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				http.Error(w, "Invalid token claims", http.StatusUnauthorized)
				return
			}
			username, _ := claims["sub"].(string)
			role, _ := claims["role"].(string)
			if username == "" {
				http.Error(w, "Invalid token claims", http.StatusUnauthorized)
				return
			}

			principal := Principal{Username: username, Role: models.UserRole(role)}
			next.ServeHTTP(w, r.WithContext(
				context.WithValue(r.Context(), principalKey, principal)))
		})
	}
}

// AdminOnly rejects callers whose token does not carry the ADMIN role. It
// must run after AuthMiddleware.
func AdminOnly() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := FromContext(r.Context())
			if !ok || principal.Role != models.RoleAdmin {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
