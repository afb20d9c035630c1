package models

// ParkingSlot is a parking place in the community lot.
//
// Resident slots belong to exactly one unit and carry the resident's vehicle
// details. Visitor slots (Visitor == true) never belong to a unit; they are
// the resource pool of the legacy first-fit visitor assignment.
type ParkingSlot struct {
	ID int64

	// Number is the slot's unique label (e.g. "E01", "V01").
	Number string

	// Plate, Model and Color describe the vehicle parked in a resident slot.
	Plate string
	Model string
	Color string

	// Visitor marks slots reserved for guests.
	Visitor bool

	// UnitID is the owning unit. Zero for visitor slots.
	UnitID int64
}

// VehicleUpdate carries the optional vehicle fields a resident may change.
// Nil fields are left untouched.
type VehicleUpdate struct {
	Plate *string
	Model *string
	Color *string
}

// Apply copies the non-nil fields of u onto the slot.
func (u VehicleUpdate) Apply(slot *ParkingSlot) {
	if u.Plate != nil {
		slot.Plate = *u.Plate
	}
	if u.Model != nil {
		slot.Model = *u.Model
	}
	if u.Color != nil {
		slot.Color = *u.Color
	}
}

// VisitorSpot is a parking place of the dedicated visitor pool.
// It is a different resource type from a visitor-flagged ParkingSlot.
type VisitorSpot struct {
	ID          int64
	Number      string
	Description string
	Capacity    int
}
