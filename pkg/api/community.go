package api

import "time"

type Unit struct {
	ID     int64  `json:"id"`
	Number string `json:"number"`
}

type Resident struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Admin bool   `json:"admin,omitempty"`
}

type CommonArea struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Capacity    int32  `json:"capacity"`
}

type VisitorSpot struct {
	ID          int64  `json:"id"`
	Number      string `json:"number"`
	Description string `json:"description,omitempty"`
	Capacity    int32  `json:"capacity"`
}

type ParkingSlot struct {
	ID      int64  `json:"id"`
	Number  string `json:"number"`
	Plate   string `json:"plate,omitempty"`
	Model   string `json:"model,omitempty"`
	Color   string `json:"color,omitempty"`
	Visitor bool   `json:"visitor,omitempty"`
}

type Debt struct {
	ID          int64     `json:"id"`
	UnitID      int64     `json:"unit_id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date,omitzero"`
	Paid        bool      `json:"paid,omitempty"`
}

type ListCommonAreasRequest struct{}

type ListCommonAreasResponse struct {
	Areas []*CommonArea `json:"areas"`
}

type ListVisitorSpotsRequest struct{}

type ListVisitorSpotsResponse struct {
	Spots []*VisitorSpot `json:"spots"`
}

type GetResidentPanelRequest struct{}

// GetResidentPanelResponse summarizes the caller's unit: its parking slot,
// pending dues and whether amenities can be booked.
type GetResidentPanelResponse struct {
	Unit        *Unit        `json:"unit"`
	ParkingSlot *ParkingSlot `json:"parking_slot,omitempty"`
	Debts       []*Debt      `json:"debts"`
	TotalDue    float64      `json:"total_due"`
	CanReserve  bool         `json:"can_reserve"`
}

// UpdateVehicleRequest changes the vehicle registered on the caller's own
// parking slot. Omitted fields are left untouched.
type UpdateVehicleRequest struct {
	Plate *string `json:"plate,omitempty" validate:"omitempty,max=16"`
	Model *string `json:"model,omitempty" validate:"omitempty,max=64"`
	Color *string `json:"color,omitempty" validate:"omitempty,max=32"`
}

type UpdateVehicleResponse struct {
	ParkingSlot *ParkingSlot `json:"parking_slot"`
}

// MarkDebtPaidRequest records the payment of a debt. Administrators only.
type MarkDebtPaidRequest struct {
	DebtID int64 `json:"debt_id" validate:"required,gt=0"`
}

// MarkDebtPaidResponse returns the settled debt and whether its unit may
// now book common areas.
type MarkDebtPaidResponse struct {
	Debt       *Debt `json:"debt"`
	CanReserve bool  `json:"can_reserve"`
}
