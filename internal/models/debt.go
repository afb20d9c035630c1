package models

import "time"

// Debt is a due owed by a unit (maintenance fee, fine...).
// A unit with any unpaid debt may not book common areas.
type Debt struct {
	ID     int64
	UnitID int64

	// Amount owed, in pesos.
	Amount float64

	Description string

	DueDate   time.Time
	CreatedAt time.Time

	// Paid is set once the debt is settled.
	Paid bool
}
