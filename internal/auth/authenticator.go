package auth

import (
	"context"
	"errors"

	"github.com/sanagustin/backend/internal/models"
)

var (
	ErrUnknownResident  = errors.New("no resident registered for this identity")
	ErrInactiveResident = errors.New("resident account is not active")
)

// Identity is a caller identity already verified by an external provider
// (e.g. Google sign-in).
type Identity struct {
	Email      string
	Name       string
	Provider   string
	ProviderID string
}

// Authenticator maps a verified identity onto a resident.
// This abstraction allows swapping identity sources (OAuth providers,
// a directory service, etc.) without changing the service layer code.
type Authenticator interface {
	Authenticate(ctx context.Context, id Identity) (*models.Resident, error)
}
