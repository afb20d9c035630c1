package models

import (
	"fmt"
	"time"
)

// ReservationState is the lifecycle state of a reservation.
// New reservations start active; only active reservations hold their resource.
type ReservationState string

const (
	ReservationActive    ReservationState = "active"
	ReservationCancelled ReservationState = "cancelled"
	ReservationCompleted ReservationState = "completed"
)

// Valid reports whether s is a known state.
func (s ReservationState) Valid() bool {
	switch s {
	case ReservationActive, ReservationCancelled, ReservationCompleted:
		return true
	}
	return false
}

// ResourceKind identifies the kind of bookable resource.
type ResourceKind string

const (
	// ResourceAmenity is a CommonArea.
	ResourceAmenity ResourceKind = "amenity"
	// ResourceVisitorSpot is a VisitorSpot of the dedicated pool.
	ResourceVisitorSpot ResourceKind = "visitor_spot"
	// ResourceParkingSlot is a visitor-flagged ParkingSlot (legacy pool).
	ResourceParkingSlot ResourceKind = "parking_slot"
)

// ParseResourceKind converts a wire value into a ResourceKind.
func ParseResourceKind(s string) (ResourceKind, error) {
	switch k := ResourceKind(s); k {
	case ResourceAmenity, ResourceVisitorSpot, ResourceParkingSlot:
		return k, nil
	}
	return "", fmt.Errorf("unknown resource kind %q", s)
}

// ResourceRef points at one bookable resource.
type ResourceRef struct {
	Kind ResourceKind
	ID   int64
}

func (r ResourceRef) String() string {
	return fmt.Sprintf("%s:%d", r.Kind, r.ID)
}

// AmenityReservation books a CommonArea for the half-open window [Start, End).
type AmenityReservation struct {
	ID     int64
	AreaID int64
	UnitID int64

	Start time.Time
	End   time.Time

	State     ReservationState
	CreatedAt time.Time

	// Area is a snapshot of the booked area. Only filled by the
	// reservation core when returning results, never persisted.
	Area *CommonArea
}

// VisitorReservation books visitor parking for the half-open window [Start, End).
//
// Exactly one of SpotID (dedicated visitor pool) and ParkingSlotID
// (legacy visitor-flagged slot) is set.
type VisitorReservation struct {
	ID            int64
	SpotID        int64
	ParkingSlotID int64
	UnitID        int64

	// Plate is the visitor's vehicle plate, if known.
	Plate string

	Start time.Time
	End   time.Time

	State     ReservationState
	CreatedAt time.Time

	// Spot and ParkingSlot are snapshots of the booked resource.
	Spot        *VisitorSpot
	ParkingSlot *ParkingSlot
}

// Resource returns the resource this reservation holds.
func (r *VisitorReservation) Resource() ResourceRef {
	if r.ParkingSlotID != 0 {
		return ResourceRef{Kind: ResourceParkingSlot, ID: r.ParkingSlotID}
	}
	return ResourceRef{Kind: ResourceVisitorSpot, ID: r.SpotID}
}
