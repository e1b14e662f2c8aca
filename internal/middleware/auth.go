package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/crisischord/auth-be/internal/auth"
	"github.com/crisischord/auth-be/internal/http/respond"
)

type contextKey struct{}

var claimsKey contextKey

// RequireAuth gates a handler behind bearer-token verification. A missing
// Authorization header yields 401; a token that fails verification yields
// 400. On success the decoded claims are attached to the request context.
func RequireAuth(tokens *auth.TokenManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			respond.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "Invalid token.")
			return
		}
		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFrom returns the verified claims attached by RequireAuth.
func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}
