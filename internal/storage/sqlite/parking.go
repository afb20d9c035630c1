package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sanagustin/backend/internal/models"
)

const parkingColumns = "id, number, plate, model, color, visitor, unit_id"

func scanParkingSlot(row rowScanner) (*models.ParkingSlot, error) {
	slot := &models.ParkingSlot{}
	var unitID sql.NullInt64
	if err := row.Scan(&slot.ID, &slot.Number, &slot.Plate, &slot.Model, &slot.Color,
		&slot.Visitor, &unitID); err != nil {
		return nil, err
	}
	slot.UnitID = unitID.Int64
	return slot, nil
}

// CreateParkingSlot inserts a new parking slot and sets its ID.
// Creating a second resident slot for the same unit fails with storage.ErrConflict.
func (s queries) CreateParkingSlot(ctx context.Context, slot *models.ParkingSlot) error {
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO parking_slots (number, plate, model, color, visitor, unit_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		slot.Number, slot.Plate, slot.Model, slot.Color, slot.Visitor, nullID(slot.UnitID),
	)
	if err != nil {
		return fmt.Errorf("failed to create parking slot: %w", translateError(err))
	}
	slot.ID, err = res.LastInsertId()
	return err
}

// UpdateParkingSlot saves the vehicle details of a slot.
func (s queries) UpdateParkingSlot(ctx context.Context, slot *models.ParkingSlot) error {
	res, err := s.conn.ExecContext(ctx,
		"UPDATE parking_slots SET plate = ?, model = ?, color = ? WHERE id = ?",
		slot.Plate, slot.Model, slot.Color, slot.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update parking slot: %w", translateError(err))
	}
	return requireAffected(res, "parking slot", slot.ID)
}

// GetParkingSlot retrieves a parking slot by ID.
func (s queries) GetParkingSlot(ctx context.Context, id int64) (*models.ParkingSlot, error) {
	slot, err := scanParkingSlot(s.conn.QueryRowContext(ctx,
		"SELECT "+parkingColumns+" FROM parking_slots WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err, "parking slot", id)
	}
	return slot, nil
}

// GetResidentParkingSlot retrieves the unit's own (non-visitor) slot.
func (s queries) GetResidentParkingSlot(ctx context.Context, unitID int64) (*models.ParkingSlot, error) {
	slot, err := scanParkingSlot(s.conn.QueryRowContext(ctx,
		"SELECT "+parkingColumns+" FROM parking_slots WHERE unit_id = ? AND visitor = 0", unitID))
	if err != nil {
		return nil, notFound(err, "parking slot for unit", unitID)
	}
	return slot, nil
}

// ListVisitorParkingSlots retrieves the visitor-flagged slots by ascending ID.
func (s queries) ListVisitorParkingSlots(ctx context.Context) ([]*models.ParkingSlot, error) {
	rows, err := s.conn.QueryContext(ctx,
		"SELECT "+parkingColumns+" FROM parking_slots WHERE visitor = 1 ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list visitor parking slots: %w", translateError(err))
	}
	defer rows.Close()

	var slots []*models.ParkingSlot
	for rows.Next() {
		slot, err := scanParkingSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan parking slot: %w", err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate parking slots: %w", err)
	}
	return slots, nil
}
