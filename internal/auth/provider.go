package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sanagustin/backend/internal/models"
	"github.com/sanagustin/backend/internal/storage"
)

// ResidentStorage is the part of the store the authenticator needs.
type ResidentStorage interface {
	GetResidentByProvider(ctx context.Context, provider, providerID string) (*models.Resident, error)
	GetResidentByEmail(ctx context.Context, email string) (*models.Resident, error)
}

// ProviderAuthenticator resolves identities by provider account first and
// by email second. Only active residents are accepted.
type ProviderAuthenticator struct {
	storage ResidentStorage
}

// NewProviderAuthenticator creates a new provider-backed authenticator.
func NewProviderAuthenticator(storage ResidentStorage) *ProviderAuthenticator {
	return &ProviderAuthenticator{storage: storage}
}

// Authenticate returns the active resident matching id.
func (a *ProviderAuthenticator) Authenticate(ctx context.Context, id Identity) (*models.Resident, error) {
	resident, err := a.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if !resident.Active {
		return nil, ErrInactiveResident
	}
	return resident, nil
}

func (a *ProviderAuthenticator) lookup(ctx context.Context, id Identity) (*models.Resident, error) {
	if id.Provider != "" && id.ProviderID != "" {
		resident, err := a.storage.GetResidentByProvider(ctx, id.Provider, id.ProviderID)
		if err == nil {
			return resident, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up resident: %w", err)
		}
	}

	email := strings.ToLower(strings.TrimSpace(id.Email))
	if email == "" {
		return nil, ErrUnknownResident
	}
	resident, err := a.storage.GetResidentByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrUnknownResident
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up resident: %w", err)
	}
	return resident, nil
}
