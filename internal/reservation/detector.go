package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/sanagustin/backend/internal/models"
	"github.com/sanagustin/backend/internal/scheduling"
	"github.com/sanagustin/backend/internal/storage"
)

// ConflictDetector finds active reservations overlapping a candidate window
// on one resource. It never writes.
type ConflictDetector struct {
	store storage.Reader
}

// NewConflictDetector creates a detector reading reservations from r.
func NewConflictDetector(r storage.Reader) *ConflictDetector {
	return &ConflictDetector{store: r}
}

// HasConflict reports whether an active reservation on resource overlaps
// [start, end). A zero-length or inverted window never conflicts.
func (d *ConflictDetector) HasConflict(ctx context.Context, resource models.ResourceRef, start, end time.Time) (bool, error) {
	conflicts, err := d.Conflicts(ctx, resource, start, end)
	if err != nil {
		return false, err
	}
	return len(conflicts) > 0, nil
}

// Conflicts returns the active reservations on resource overlapping [start, end).
func (d *ConflictDetector) Conflicts(ctx context.Context, resource models.ResourceRef, start, end time.Time) ([]scheduling.Booking, error) {
	window := scheduling.Interval{Start: start, End: end}
	if window.Empty() {
		return nil, nil
	}

	bookings, err := d.bookings(ctx, resource, window)
	if err != nil {
		return nil, err
	}
	return scheduling.Conflicts(bookings, window), nil
}

// bookings loads the candidate reservations of a resource around window.
func (d *ConflictDetector) bookings(ctx context.Context, resource models.ResourceRef, window scheduling.Interval) ([]scheduling.Booking, error) {
	switch resource.Kind {
	case models.ResourceAmenity:
		rs, err := d.store.ListActiveAmenityReservations(ctx, resource.ID, window)
		if err != nil {
			return nil, fmt.Errorf("failed to load reservations for %s: %w", resource, err)
		}
		bookings := make([]scheduling.Booking, len(rs))
		for i, r := range rs {
			bookings[i] = booking(r.ID, r.Start, r.End, r.State)
		}
		return bookings, nil

	case models.ResourceVisitorSpot, models.ResourceParkingSlot:
		rs, err := d.store.ListActiveVisitorReservations(ctx, resource, window)
		if err != nil {
			return nil, fmt.Errorf("failed to load reservations for %s: %w", resource, err)
		}
		bookings := make([]scheduling.Booking, len(rs))
		for i, r := range rs {
			bookings[i] = booking(r.ID, r.Start, r.End, r.State)
		}
		return bookings, nil
	}
	return nil, fmt.Errorf("unknown resource kind %q", resource.Kind)
}

func booking(id int64, start, end time.Time, state models.ReservationState) scheduling.Booking {
	return scheduling.Booking{
		ID:     id,
		Window: scheduling.Interval{Start: start, End: end},
		Active: state == models.ReservationActive,
	}
}
