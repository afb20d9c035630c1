package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/sanagustin/backend/internal/models"
	"github.com/sanagustin/backend/internal/scheduling"
	"github.com/sanagustin/backend/internal/storage"
)

// visitorPoolKey locks the whole pool of visitor-flagged parking slots:
// first-fit reads every slot before choosing one.
const visitorPoolKey = "parking_slot:visitor-pool"

// AssignVisitorParking picks the first visitor-flagged parking slot, in
// ascending id order, that is free during [arrival, arrival+stay) and books it
// for the unit with the given number. It fails with ErrResourceUnavailable
// when every slot is taken.
//
// Like CreateVisitorReservation it is not gated by dues and caps the stay at
// MaxVisitorStay.
func (o *Orchestrator) AssignVisitorParking(ctx context.Context, unitNumber string, arrival time.Time, stay time.Duration, plate string) (*models.VisitorReservation, error) {
	pool := models.ResourceRef{Kind: models.ResourceParkingSlot}

	var created *models.VisitorReservation
	err := o.create(ctx, pool, func() error {
		window, err := scheduling.IntervalFor(arrival, stay)
		if err != nil {
			return err
		}

		return o.book(ctx, visitorPoolKey, models.ResourceParkingSlot, func(tx storage.Tx) error {
			unit, err := tx.GetUnitByNumber(ctx, unitNumber)
			if err != nil {
				return lookupErr(err)
			}
			if err := checkVisitorStay(window); err != nil {
				return err
			}

			slots, err := tx.ListVisitorParkingSlots(ctx)
			if err != nil {
				return fmt.Errorf("failed to list visitor slots: %w", err)
			}

			detector := NewConflictDetector(tx)
			candidates := make([]scheduling.Candidate, 0, len(slots))
			byID := make(map[int64]*models.ParkingSlot, len(slots))
			for _, slot := range slots {
				ref := models.ResourceRef{Kind: models.ResourceParkingSlot, ID: slot.ID}
				bookings, err := detector.Conflicts(ctx, ref, window.Start, window.End)
				if err != nil {
					return err
				}
				candidates = append(candidates, scheduling.Candidate{ID: slot.ID, Bookings: bookings})
				byID[slot.ID] = slot
			}

			slotID, ok := scheduling.FirstFit(candidates, window)
			if !ok {
				return fmt.Errorf("%w: no visitor slots available in this window", ErrResourceUnavailable)
			}

			r := &models.VisitorReservation{
				ParkingSlotID: slotID,
				UnitID:        unit.ID,
				Plate:         plate,
				Start:         window.Start,
				End:           window.End,
				State:         models.ReservationActive,
			}
			if err := tx.CreateVisitorReservation(ctx, r); err != nil {
				return err
			}
			r.ParkingSlot = byID[slotID]
			created = r
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("Visitor parking assigned",
		"reservation_id", created.ID,
		"slot", created.ParkingSlot.Number,
		"unit", unitNumber,
		"start", created.Start,
		"end", created.End,
	)
	return created, nil
}
