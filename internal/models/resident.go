package models

import "time"

// Resident represents a registered user of the community.
// Residents sign in through a third-party identity provider; the pair
// (Provider, ProviderID) identifies them at that provider.
type Resident struct {
	ID int64

	// Email is the resident's email address (unique).
	Email string

	Name string

	// Provider is the identity provider name (e.g. "google", "facebook").
	Provider string

	// ProviderID is the subject identifier assigned by the provider.
	ProviderID string

	// Active is false for residents that may no longer sign in.
	Active bool

	// Admin grants access to administrative operations.
	Admin bool

	CreatedAt time.Time
}
