package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/sanagustin/backend/internal/models"
	"github.com/sanagustin/backend/internal/storage"
)

type memResidents []*models.Resident

func (m memResidents) GetResidentByProvider(_ context.Context, provider, providerID string) (*models.Resident, error) {
	for _, r := range m {
		if r.Provider == provider && r.ProviderID == providerID {
			return r, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m memResidents) GetResidentByEmail(_ context.Context, email string) (*models.Resident, error) {
	for _, r := range m {
		if r.Email == email {
			return r, nil
		}
	}
	return nil, storage.ErrNotFound
}

func TestProviderAuthenticator(t *testing.T) {
	residents := memResidents{
		{ID: 1, Email: "ana@example.com", Provider: "google", ProviderID: "g-1", Active: true},
		{ID: 2, Email: "luis@example.com", Active: true},
		{ID: 3, Email: "pending@example.com", Provider: "google", ProviderID: "g-3"},
	}
	a := NewProviderAuthenticator(residents)
	ctx := context.Background()

	tests := []struct {
		name    string
		id      Identity
		wantID  int64
		wantErr error
	}{
		{"by provider account", Identity{Provider: "google", ProviderID: "g-1", Email: "changed@example.com"}, 1, nil},
		{"by email fallback", Identity{Provider: "google", ProviderID: "g-2", Email: " Luis@Example.com "}, 2, nil},
		{"unknown", Identity{Email: "ghost@example.com"}, 0, ErrUnknownResident},
		{"empty identity", Identity{}, 0, ErrUnknownResident},
		{"inactive", Identity{Provider: "google", ProviderID: "g-3"}, 0, ErrInactiveResident},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Authenticate(ctx, tt.id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate failed: %v", err)
			}
			if got.ID != tt.wantID {
				t.Errorf("Expected resident %d, got %d", tt.wantID, got.ID)
			}
		})
	}
}
