package models

import "time"

// Registration is a sign-up request waiting for an administrator.
// Approving it creates the Resident and links the requested unit.
type Registration struct {
	ID int64

	// Email, Name, Provider and ProviderID come from the identity provider
	// and are copied onto the Resident on approval.
	Email      string
	Name       string
	Provider   string
	ProviderID string

	// UnitNumber is the unit the applicant lives in; empty when unknown.
	UnitNumber string

	Phone string
	Notes string

	CreatedAt time.Time

	// ApprovedBy is the approving administrator, zero while pending.
	ApprovedBy int64
	ApprovedAt time.Time
}

// Pending reports whether the registration still awaits approval.
func (r *Registration) Pending() bool {
	return r.ApprovedBy == 0
}
