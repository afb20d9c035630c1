package models

// Unit represents a residential apartment.
type Unit struct {
	// ID is the unique identifier for the unit.
	ID int64

	// Number is the unit's unique label (e.g. "01").
	Number string

	// ResidentID is the resident linked to this unit once their
	// registration is approved. Zero when nobody is linked yet.
	ResidentID int64
}

// HasResident reports whether a resident has been linked to the unit.
func (u *Unit) HasResident() bool {
	return u.ResidentID != 0
}
