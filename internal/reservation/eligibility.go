package reservation

import (
	"context"
	"fmt"

	"github.com/sanagustin/backend/internal/models"
	"github.com/sanagustin/backend/internal/storage"
)

// EligibilityChecker decides whether a unit may book common areas.
// A unit is eligible when it has no unpaid debt.
//
// Visitor parking is not gated on dues.
type EligibilityChecker struct {
	store storage.Reader
}

// NewEligibilityChecker creates a checker reading debts from r.
func NewEligibilityChecker(r storage.Reader) *EligibilityChecker {
	return &EligibilityChecker{store: r}
}

// CanReserveAmenity reports whether the unit has zero unpaid debts.
func (c *EligibilityChecker) CanReserveAmenity(ctx context.Context, unitID int64) (bool, error) {
	debts, err := c.store.ListUnpaidDebts(ctx, unitID)
	if err != nil {
		return false, fmt.Errorf("failed to check eligibility: %w", err)
	}
	return len(debts) == 0, nil
}

// Outstanding returns the unit's unpaid debts and their total amount.
func (c *EligibilityChecker) Outstanding(ctx context.Context, unitID int64) ([]*models.Debt, float64, error) {
	debts, err := c.store.ListUnpaidDebts(ctx, unitID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list unpaid debts: %w", err)
	}
	var total float64
	for _, d := range debts {
		total += d.Amount
	}
	return debts, total, nil
}
