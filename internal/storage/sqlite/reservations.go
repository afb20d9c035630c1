package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sanagustin/backend/internal/models"
	"github.com/sanagustin/backend/internal/scheduling"
)

const amenityColumns = "id, area_id, unit_id, start_at, end_at, state, created_at"

func scanAmenityReservation(row rowScanner) (*models.AmenityReservation, error) {
	r := &models.AmenityReservation{}
	var start, end, createdAt int64
	if err := row.Scan(&r.ID, &r.AreaID, &r.UnitID, &start, &end, &r.State, &createdAt); err != nil {
		return nil, err
	}
	r.Start = fromUnix(start)
	r.End = fromUnix(end)
	r.CreatedAt = fromUnix(createdAt)
	return r, nil
}

const visitorColumns = "id, spot_id, parking_slot_id, unit_id, plate, start_at, end_at, state, created_at"

func scanVisitorReservation(row rowScanner) (*models.VisitorReservation, error) {
	r := &models.VisitorReservation{}
	var spotID, slotID sql.NullInt64
	var plate sql.NullString
	var start, end, createdAt int64
	if err := row.Scan(&r.ID, &spotID, &slotID, &r.UnitID, &plate,
		&start, &end, &r.State, &createdAt); err != nil {
		return nil, err
	}
	r.SpotID = spotID.Int64
	r.ParkingSlotID = slotID.Int64
	if plate.Valid {
		r.Plate = plate.String
	}
	r.Start = fromUnix(start)
	r.End = fromUnix(end)
	r.CreatedAt = fromUnix(createdAt)
	return r, nil
}

// CreateAmenityReservation persists a new amenity reservation.
func (s queries) CreateAmenityReservation(ctx context.Context, r *models.AmenityReservation) error {
	if r.State == "" {
		r.State = models.ReservationActive
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO amenity_reservations (area_id, unit_id, start_at, end_at, state, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.AreaID, r.UnitID, toUnix(r.Start), toUnix(r.End), string(r.State), toUnix(r.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert amenity reservation: %w", translateError(err))
	}
	r.ID, err = res.LastInsertId()
	return err
}

// CreateVisitorReservation persists a new visitor reservation.
func (s queries) CreateVisitorReservation(ctx context.Context, r *models.VisitorReservation) error {
	if r.State == "" {
		r.State = models.ReservationActive
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO visitor_reservations (spot_id, parking_slot_id, unit_id, plate, start_at, end_at, state, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		nullID(r.SpotID), nullID(r.ParkingSlotID), r.UnitID, nullString(r.Plate),
		toUnix(r.Start), toUnix(r.End), string(r.State), toUnix(r.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert visitor reservation: %w", translateError(err))
	}
	r.ID, err = res.LastInsertId()
	return err
}

// SetReservationState moves a reservation to another lifecycle state.
// No RPC transitions reservations; tests use it to stage cancelled and
// completed rows.
func (s queries) SetReservationState(ctx context.Context, kind models.ResourceKind, id int64, state models.ReservationState) error {
	if !state.Valid() {
		return fmt.Errorf("invalid reservation state %q", state)
	}

	var table string
	switch kind {
	case models.ResourceAmenity:
		table = "amenity_reservations"
	case models.ResourceVisitorSpot, models.ResourceParkingSlot:
		table = "visitor_reservations"
	default:
		return fmt.Errorf("unknown resource kind %q", kind)
	}

	res, err := s.conn.ExecContext(ctx,
		"UPDATE "+table+" SET state = ? WHERE id = ?", string(state), id)
	if err != nil {
		return fmt.Errorf("failed to update reservation state: %w", translateError(err))
	}
	return requireAffected(res, "reservation", id)
}

// ListActiveAmenityReservations retrieves the active reservations on an area
// intersecting the given window.
func (s queries) ListActiveAmenityReservations(ctx context.Context, areaID int64, within scheduling.Interval) ([]*models.AmenityReservation, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+amenityColumns+` FROM amenity_reservations
		 WHERE area_id = ? AND state = ? AND start_at < ? AND end_at > ?
		 ORDER BY start_at, id`,
		areaID, string(models.ReservationActive), toUnix(within.End), toUnix(within.Start),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list amenity reservations: %w", translateError(err))
	}
	return collectAmenity(rows)
}

// ListActiveVisitorReservations retrieves the active reservations on a
// visitor spot or visitor parking slot intersecting the given window.
func (s queries) ListActiveVisitorReservations(ctx context.Context, resource models.ResourceRef, within scheduling.Interval) ([]*models.VisitorReservation, error) {
	var column string
	switch resource.Kind {
	case models.ResourceVisitorSpot:
		column = "spot_id"
	case models.ResourceParkingSlot:
		column = "parking_slot_id"
	default:
		return nil, fmt.Errorf("resource %s does not take visitor reservations", resource)
	}

	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+visitorColumns+` FROM visitor_reservations
		 WHERE `+column+` = ? AND state = ? AND start_at < ? AND end_at > ?
		 ORDER BY start_at, id`,
		resource.ID, string(models.ReservationActive), toUnix(within.End), toUnix(within.Start),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list visitor reservations: %w", translateError(err))
	}
	return collectVisitor(rows)
}

// ListAmenityReservationsByUnit retrieves every amenity reservation of a unit,
// most recent window first.
func (s queries) ListAmenityReservationsByUnit(ctx context.Context, unitID int64) ([]*models.AmenityReservation, error) {
	rows, err := s.conn.QueryContext(ctx,
		"SELECT "+amenityColumns+" FROM amenity_reservations WHERE unit_id = ? ORDER BY start_at DESC, id DESC",
		unitID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list amenity reservations by unit: %w", translateError(err))
	}
	return collectAmenity(rows)
}

// ListVisitorReservationsByUnit retrieves every visitor reservation of a unit,
// most recent window first.
func (s queries) ListVisitorReservationsByUnit(ctx context.Context, unitID int64) ([]*models.VisitorReservation, error) {
	rows, err := s.conn.QueryContext(ctx,
		"SELECT "+visitorColumns+" FROM visitor_reservations WHERE unit_id = ? ORDER BY start_at DESC, id DESC",
		unitID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list visitor reservations by unit: %w", translateError(err))
	}
	return collectVisitor(rows)
}

func collectAmenity(rows *sql.Rows) ([]*models.AmenityReservation, error) {
	defer rows.Close()

	var out []*models.AmenityReservation
	for rows.Next() {
		r, err := scanAmenityReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan amenity reservation: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate amenity reservations: %w", err)
	}
	return out, nil
}

func collectVisitor(rows *sql.Rows) ([]*models.VisitorReservation, error) {
	defer rows.Close()

	var out []*models.VisitorReservation
	for rows.Next() {
		r, err := scanVisitorReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan visitor reservation: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate visitor reservations: %w", err)
	}
	return out, nil
}
