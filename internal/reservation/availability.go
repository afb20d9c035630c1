package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/sanagustin/backend/internal/models"
	"github.com/sanagustin/backend/internal/scheduling"
	"github.com/sanagustin/backend/internal/storage"
)

// Availability is the answer of CheckAvailability.
type Availability struct {
	Available        bool
	ConflictingCount int
}

// CheckAvailability reports whether resource is free during [start, end) and
// how many active reservations overlap it. It is a plain read: a positive
// answer does not hold the resource.
func (o *Orchestrator) CheckAvailability(ctx context.Context, resource models.ResourceRef, start, end time.Time) (Availability, error) {
	window, err := scheduling.NewInterval(start, end)
	if err != nil {
		return Availability{}, err
	}
	if err := o.resourceExists(ctx, resource); err != nil {
		return Availability{}, err
	}

	conflicts, err := NewConflictDetector(o.store).Conflicts(ctx, resource, window.Start, window.End)
	if err != nil {
		return Availability{}, err
	}
	return Availability{
		Available:        len(conflicts) == 0,
		ConflictingCount: len(conflicts),
	}, nil
}

func (o *Orchestrator) resourceExists(ctx context.Context, resource models.ResourceRef) error {
	var err error
	switch resource.Kind {
	case models.ResourceAmenity:
		_, err = o.store.GetCommonArea(ctx, resource.ID)
	case models.ResourceVisitorSpot:
		_, err = o.store.GetVisitorSpot(ctx, resource.ID)
	case models.ResourceParkingSlot:
		var slot *models.ParkingSlot
		slot, err = o.store.GetParkingSlot(ctx, resource.ID)
		if err == nil && !slot.Visitor {
			return fmt.Errorf("%w: parking slot %s is not a visitor slot", ErrNotFound, slot.Number)
		}
	default:
		return fmt.Errorf("%w: unknown resource kind %q", ErrNotFound, resource.Kind)
	}
	return lookupErr(err)
}

// UnitReservations groups a unit's reservations of both kinds.
type UnitReservations struct {
	Amenity []*models.AmenityReservation
	Visitor []*models.VisitorReservation
}

// ListUnitReservations returns every reservation of the unit, in any state,
// with resource snapshots attached.
func (o *Orchestrator) ListUnitReservations(ctx context.Context, unitID int64) (*UnitReservations, error) {
	if _, err := o.store.GetUnit(ctx, unitID); err != nil {
		return nil, lookupErr(err)
	}

	amenity, err := o.store.ListAmenityReservationsByUnit(ctx, unitID)
	if err != nil {
		return nil, fmt.Errorf("failed to list amenity reservations: %w", err)
	}
	visitor, err := o.store.ListVisitorReservationsByUnit(ctx, unitID)
	if err != nil {
		return nil, fmt.Errorf("failed to list visitor reservations: %w", err)
	}

	if err := attachSnapshots(ctx, o.store, amenity, visitor); err != nil {
		return nil, err
	}
	return &UnitReservations{Amenity: amenity, Visitor: visitor}, nil
}

func attachSnapshots(ctx context.Context, r storage.Reader, amenity []*models.AmenityReservation, visitor []*models.VisitorReservation) error {
	areas := map[int64]*models.CommonArea{}
	for _, res := range amenity {
		area, ok := areas[res.AreaID]
		if !ok {
			var err error
			if area, err = r.GetCommonArea(ctx, res.AreaID); err != nil {
				return fmt.Errorf("failed to load area %d: %w", res.AreaID, err)
			}
			areas[res.AreaID] = area
		}
		res.Area = area
	}

	for _, res := range visitor {
		var err error
		if res.ParkingSlotID != 0 {
			res.ParkingSlot, err = r.GetParkingSlot(ctx, res.ParkingSlotID)
		} else {
			res.Spot, err = r.GetVisitorSpot(ctx, res.SpotID)
		}
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", res.Resource(), err)
		}
	}
	return nil
}
