package api

import "time"

type AmenityReservation struct {
	ID        int64       `json:"id"`
	AreaID    int64       `json:"area_id"`
	UnitID    int64       `json:"unit_id"`
	Start     time.Time   `json:"start"`
	End       time.Time   `json:"end"`
	State     string      `json:"state"`
	CreatedAt time.Time   `json:"created_at"`
	Area      *CommonArea `json:"area,omitempty"`
}

// VisitorReservation holds either a dedicated visitor spot (spot_id) or a
// visitor-flagged parking slot (parking_slot_id).
type VisitorReservation struct {
	ID            int64        `json:"id"`
	SpotID        int64        `json:"spot_id,omitempty"`
	ParkingSlotID int64        `json:"parking_slot_id,omitempty"`
	UnitID        int64        `json:"unit_id"`
	Plate         string       `json:"plate,omitempty"`
	Start         time.Time    `json:"start"`
	End           time.Time    `json:"end"`
	State         string       `json:"state"`
	CreatedAt     time.Time    `json:"created_at"`
	Spot          *VisitorSpot `json:"spot,omitempty"`
	ParkingSlot   *ParkingSlot `json:"parking_slot,omitempty"`
}

type CreateAmenityReservationRequest struct {
	AreaID int64     `json:"area_id" validate:"required,gt=0"`
	Start  time.Time `json:"start" validate:"required"`
	End    time.Time `json:"end" validate:"required"`
}

type CreateAmenityReservationResponse struct {
	Reservation *AmenityReservation `json:"reservation"`
}

type CreateVisitorReservationRequest struct {
	SpotID int64     `json:"spot_id" validate:"required,gt=0"`
	Start  time.Time `json:"start" validate:"required"`
	End    time.Time `json:"end" validate:"required"`
	Plate  string    `json:"plate,omitempty" validate:"omitempty,max=16"`
}

type CreateVisitorReservationResponse struct {
	Reservation *VisitorReservation `json:"reservation"`
}

// AssignVisitorParkingRequest asks for the first free visitor-flagged slot.
// UnitNumber defaults to the caller's unit; only administrators may set it.
type AssignVisitorParkingRequest struct {
	UnitNumber string    `json:"unit_number,omitempty" validate:"omitempty,max=8"`
	Arrival    time.Time `json:"arrival" validate:"required"`
	StayHours  int32     `json:"stay_hours" validate:"required,gt=0"`
	Plate      string    `json:"plate,omitempty" validate:"omitempty,max=16"`
}

type AssignVisitorParkingResponse struct {
	Reservation *VisitorReservation `json:"reservation"`
}

type CheckAvailabilityRequest struct {
	ResourceKind string    `json:"resource_kind" validate:"required,oneof=amenity visitor_spot parking_slot"`
	ResourceID   int64     `json:"resource_id" validate:"required,gt=0"`
	Start        time.Time `json:"start" validate:"required"`
	End          time.Time `json:"end" validate:"required"`
}

type CheckAvailabilityResponse struct {
	Available        bool  `json:"available"`
	ConflictingCount int32 `json:"conflicting_count"`
}

type ListMyReservationsRequest struct{}

type ListMyReservationsResponse struct {
	Amenity []*AmenityReservation `json:"amenity"`
	Visitor []*VisitorReservation `json:"visitor"`
}
