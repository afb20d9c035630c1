// Package middleware holds the Connect interceptors shared by all services.
package middleware

import (
	"context"
	"slices"
	"strings"

	"connectrpc.com/connect"

	"github.com/sanagustin/backend/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// ResidentIDKey is the context key for storing the authenticated resident ID.
	ResidentIDKey contextKey = "resident_id"
	// EmailKey is the context key for storing the authenticated resident's email.
	EmailKey contextKey = "email"
	// AdminKey is the context key for the administrator flag.
	AdminKey contextKey = "admin"
)

// GetResidentID extracts the resident ID from the context.
// Returns 0 if not found.
func GetResidentID(ctx context.Context) int64 {
	id, _ := ctx.Value(ResidentIDKey).(int64)
	return id
}

// GetEmail extracts the resident email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// IsAdmin reports whether the caller is an administrator.
func IsAdmin(ctx context.Context) bool {
	admin, _ := ctx.Value(AdminKey).(bool)
	return admin
}

// WithResident returns a context carrying the claims of an authenticated
// resident, as RequireAuth stores them.
func WithResident(ctx context.Context, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, ResidentIDKey, claims.ResidentID)
	ctx = context.WithValue(ctx, EmailKey, claims.Email)
	ctx = context.WithValue(ctx, AdminKey, claims.Admin)
	return ctx
}

// RequireAuth returns a middleware that validates JWT tokens and requires authentication.
// It extracts the token from the Authorization header, validates it, and adds
// the resident's claims to the request context.
//
// Calls to the public procedures pass through without a token; a token sent
// to them is still validated.
func RequireAuth(jwtManager *auth.JWTManager, public ...string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				if slices.Contains(public, req.Spec().Procedure) {
					return next(ctx, req)
				}
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithResident(ctx, claims), req)
		}
	}
}
