package sqlite

import (
	"context"
	"fmt"

	"github.com/sanagustin/backend/internal/models"
)

// CreateCommonArea inserts a new common area and sets its ID.
func (s queries) CreateCommonArea(ctx context.Context, area *models.CommonArea) error {
	res, err := s.conn.ExecContext(ctx,
		"INSERT INTO common_areas (name, description, location, capacity) VALUES (?, ?, ?, ?)",
		area.Name, area.Description, area.Location, area.Capacity,
	)
	if err != nil {
		return fmt.Errorf("failed to create common area: %w", translateError(err))
	}
	area.ID, err = res.LastInsertId()
	return err
}

// GetCommonArea retrieves a common area by ID.
func (s queries) GetCommonArea(ctx context.Context, id int64) (*models.CommonArea, error) {
	area := &models.CommonArea{}
	err := s.conn.QueryRowContext(ctx,
		"SELECT id, name, description, location, capacity FROM common_areas WHERE id = ?", id,
	).Scan(&area.ID, &area.Name, &area.Description, &area.Location, &area.Capacity)
	if err != nil {
		return nil, notFound(err, "common area", id)
	}
	return area, nil
}

// ListCommonAreas retrieves all common areas ordered by ID.
func (s queries) ListCommonAreas(ctx context.Context) ([]*models.CommonArea, error) {
	rows, err := s.conn.QueryContext(ctx,
		"SELECT id, name, description, location, capacity FROM common_areas ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list common areas: %w", translateError(err))
	}
	defer rows.Close()

	var areas []*models.CommonArea
	for rows.Next() {
		area := &models.CommonArea{}
		if err := rows.Scan(&area.ID, &area.Name, &area.Description, &area.Location, &area.Capacity); err != nil {
			return nil, fmt.Errorf("failed to scan common area: %w", err)
		}
		areas = append(areas, area)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate common areas: %w", err)
	}
	return areas, nil
}

// CreateVisitorSpot inserts a new visitor spot and sets its ID.
func (s queries) CreateVisitorSpot(ctx context.Context, spot *models.VisitorSpot) error {
	res, err := s.conn.ExecContext(ctx,
		"INSERT INTO visitor_spots (number, description, capacity) VALUES (?, ?, ?)",
		spot.Number, spot.Description, spot.Capacity,
	)
	if err != nil {
		return fmt.Errorf("failed to create visitor spot: %w", translateError(err))
	}
	spot.ID, err = res.LastInsertId()
	return err
}

// GetVisitorSpot retrieves a visitor spot by ID.
func (s queries) GetVisitorSpot(ctx context.Context, id int64) (*models.VisitorSpot, error) {
	spot := &models.VisitorSpot{}
	err := s.conn.QueryRowContext(ctx,
		"SELECT id, number, description, capacity FROM visitor_spots WHERE id = ?", id,
	).Scan(&spot.ID, &spot.Number, &spot.Description, &spot.Capacity)
	if err != nil {
		return nil, notFound(err, "visitor spot", id)
	}
	return spot, nil
}

// ListVisitorSpots retrieves all visitor spots ordered by ID.
func (s queries) ListVisitorSpots(ctx context.Context) ([]*models.VisitorSpot, error) {
	rows, err := s.conn.QueryContext(ctx,
		"SELECT id, number, description, capacity FROM visitor_spots ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list visitor spots: %w", translateError(err))
	}
	defer rows.Close()

	var spots []*models.VisitorSpot
	for rows.Next() {
		spot := &models.VisitorSpot{}
		if err := rows.Scan(&spot.ID, &spot.Number, &spot.Description, &spot.Capacity); err != nil {
			return nil, fmt.Errorf("failed to scan visitor spot: %w", err)
		}
		spots = append(spots, spot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate visitor spots: %w", err)
	}
	return spots, nil
}
