package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sanagustin/backend/internal/models"
	"github.com/sanagustin/backend/internal/storage"
)

const unitColumns = "id, number, resident_id"

func scanUnit(row rowScanner) (*models.Unit, error) {
	unit := &models.Unit{}
	var residentID sql.NullInt64
	if err := row.Scan(&unit.ID, &unit.Number, &residentID); err != nil {
		return nil, err
	}
	unit.ResidentID = residentID.Int64
	return unit, nil
}

// CreateUnit inserts a new unit and sets its ID.
func (s queries) CreateUnit(ctx context.Context, unit *models.Unit) error {
	res, err := s.conn.ExecContext(ctx,
		"INSERT INTO units (number, resident_id) VALUES (?, ?)",
		unit.Number, nullID(unit.ResidentID),
	)
	if err != nil {
		return fmt.Errorf("failed to create unit: %w", translateError(err))
	}
	unit.ID, err = res.LastInsertId()
	return err
}

// LinkUnitResident links an approved resident to a unit.
func (s queries) LinkUnitResident(ctx context.Context, unitID, residentID int64) error {
	res, err := s.conn.ExecContext(ctx,
		"UPDATE units SET resident_id = ? WHERE id = ?",
		nullID(residentID), unitID,
	)
	if err != nil {
		return fmt.Errorf("failed to link unit resident: %w", translateError(err))
	}
	return requireAffected(res, "unit", unitID)
}

// GetUnit retrieves a unit by ID.
func (s queries) GetUnit(ctx context.Context, id int64) (*models.Unit, error) {
	unit, err := scanUnit(s.conn.QueryRowContext(ctx,
		"SELECT "+unitColumns+" FROM units WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err, "unit", id)
	}
	return unit, nil
}

// GetUnitByNumber retrieves a unit by its number (e.g. "01").
func (s queries) GetUnitByNumber(ctx context.Context, number string) (*models.Unit, error) {
	unit, err := scanUnit(s.conn.QueryRowContext(ctx,
		"SELECT "+unitColumns+" FROM units WHERE number = ?", number))
	if err != nil {
		return nil, notFound(err, "unit", number)
	}
	return unit, nil
}

// GetUnitByResident retrieves the unit linked to a resident.
func (s queries) GetUnitByResident(ctx context.Context, residentID int64) (*models.Unit, error) {
	unit, err := scanUnit(s.conn.QueryRowContext(ctx,
		"SELECT "+unitColumns+" FROM units WHERE resident_id = ?", residentID))
	if err != nil {
		return nil, notFound(err, "unit for resident", residentID)
	}
	return unit, nil
}

const residentColumns = "id, email, name, provider, provider_id, active, admin, created_at"

func scanResident(row rowScanner) (*models.Resident, error) {
	r := &models.Resident{}
	var provider, providerID sql.NullString
	var createdAt int64
	if err := row.Scan(&r.ID, &r.Email, &r.Name, &provider, &providerID,
		&r.Active, &r.Admin, &createdAt); err != nil {
		return nil, err
	}
	r.Provider = provider.String
	r.ProviderID = providerID.String
	r.CreatedAt = fromUnix(createdAt)
	return r, nil
}

// CreateResident inserts a new resident and sets its ID and CreatedAt.
func (s queries) CreateResident(ctx context.Context, resident *models.Resident) error {
	if resident.CreatedAt.IsZero() {
		resident.CreatedAt = time.Now().UTC()
	}

	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO residents (email, name, provider, provider_id, active, admin, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		resident.Email, resident.Name, nullString(resident.Provider), nullString(resident.ProviderID),
		resident.Active, resident.Admin, toUnix(resident.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create resident: %w", translateError(err))
	}
	resident.ID, err = res.LastInsertId()
	return err
}

// GetResident retrieves a resident by ID.
func (s queries) GetResident(ctx context.Context, id int64) (*models.Resident, error) {
	r, err := scanResident(s.conn.QueryRowContext(ctx,
		"SELECT "+residentColumns+" FROM residents WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err, "resident", id)
	}
	return r, nil
}

// GetResidentByEmail retrieves a resident by email address.
func (s queries) GetResidentByEmail(ctx context.Context, email string) (*models.Resident, error) {
	r, err := scanResident(s.conn.QueryRowContext(ctx,
		"SELECT "+residentColumns+" FROM residents WHERE email = ?", email))
	if err != nil {
		return nil, notFound(err, "resident", email)
	}
	return r, nil
}

// GetResidentByProvider retrieves a resident by identity provider subject.
func (s queries) GetResidentByProvider(ctx context.Context, provider, providerID string) (*models.Resident, error) {
	r, err := scanResident(s.conn.QueryRowContext(ctx,
		"SELECT "+residentColumns+" FROM residents WHERE provider = ? AND provider_id = ?",
		provider, providerID))
	if err != nil {
		return nil, notFound(err, "resident", provider+"/"+providerID)
	}
	return r, nil
}

// requireAffected turns an UPDATE that matched no row into storage.ErrNotFound.
func requireAffected(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %d", storage.ErrNotFound, what, id)
	}
	return nil
}
