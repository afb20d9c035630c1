package api

import "time"

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	Resident *Resident `json:"resident"`
	// Unit is nil until the resident is linked to a unit.
	Unit *Unit `json:"unit,omitempty"`
}

// Registration is a sign-up waiting for an administrator's approval.
type Registration struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Provider   string    `json:"provider,omitempty"`
	UnitNumber string    `json:"unit_number,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// RegisterRequest files a sign-up with the identity the provider verified.
// Provider and ProviderID are set together or not at all. It is the only
// call accepted without a bearer token.
type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email,max=254"`
	Name       string `json:"name" validate:"required,max=128"`
	Provider   string `json:"provider,omitempty" validate:"omitempty,oneof=google facebook"`
	ProviderID string `json:"provider_id,omitempty" validate:"omitempty,max=128"`
	UnitNumber string `json:"unit_number,omitempty" validate:"omitempty,max=8"`
	Phone      string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Notes      string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type RegisterResponse struct {
	Registration *Registration `json:"registration"`
}

type ListPendingRegistrationsRequest struct{}

type ListPendingRegistrationsResponse struct {
	Registrations []*Registration `json:"registrations"`
}

type ApproveRegistrationRequest struct {
	RegistrationID int64 `json:"registration_id" validate:"required,gt=0"`
}

// ApproveRegistrationResponse carries the new resident and, when the
// registration named one, the unit it was linked to.
type ApproveRegistrationResponse struct {
	Resident *Resident `json:"resident"`
	Unit     *Unit     `json:"unit,omitempty"`
}
