package reservation

import (
	"errors"
	"fmt"

	"github.com/sanagustin/backend/internal/scheduling"
	"github.com/sanagustin/backend/internal/storage"
)

// Errors returned by the reservation core. They are wrapped with context;
// compare with errors.Is.
var (
	// ErrNotFound: the referenced unit, common area, spot or slot does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEligibilityDenied: the unit has unpaid debts (amenity reservations only).
	ErrEligibilityDenied = errors.New("unit has unpaid debts")

	// ErrResourceUnavailable: the window conflicts with an active reservation,
	// or no visitor slot is free.
	ErrResourceUnavailable = errors.New("resource unavailable")

	// ErrInvalidDuration: the visitor reservation is longer than MaxVisitorStay.
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrInvalidInterval: the window's end is not after its start, or the window
	// reaches outside the storable range.
	ErrInvalidInterval = scheduling.ErrInvalidInterval
)

// Kind names the error kind for logs, metrics and RPC metadata.
// It returns "error" for anything outside the reservation taxonomy.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrEligibilityDenied):
		return "eligibility_denied"
	case errors.Is(err, ErrResourceUnavailable):
		return "resource_unavailable"
	case errors.Is(err, ErrInvalidDuration):
		return "invalid_duration"
	case errors.Is(err, ErrInvalidInterval):
		return "invalid_interval"
	default:
		return "error"
	}
}

// lookupErr turns storage.ErrNotFound into ErrNotFound and leaves other
// store failures untouched.
func lookupErr(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
