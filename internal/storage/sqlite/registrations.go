package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sanagustin/backend/internal/models"
)

const registrationColumns = "id, email, name, provider, provider_id, unit_number, phone, notes, created_at, approved_by, approved_at"

func scanRegistration(row rowScanner) (*models.Registration, error) {
	reg := &models.Registration{}
	var provider, providerID sql.NullString
	var approvedBy, approvedAt sql.NullInt64
	var createdAt int64
	if err := row.Scan(&reg.ID, &reg.Email, &reg.Name, &provider, &providerID,
		&reg.UnitNumber, &reg.Phone, &reg.Notes, &createdAt, &approvedBy, &approvedAt); err != nil {
		return nil, err
	}
	reg.Provider = provider.String
	reg.ProviderID = providerID.String
	reg.CreatedAt = fromUnix(createdAt)
	reg.ApprovedBy = approvedBy.Int64
	reg.ApprovedAt = fromNullUnix(approvedAt)
	return reg, nil
}

// CreateRegistration inserts a pending registration and sets its ID and CreatedAt.
func (s queries) CreateRegistration(ctx context.Context, reg *models.Registration) error {
	if reg.CreatedAt.IsZero() {
		reg.CreatedAt = time.Now().UTC()
	}

	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO pending_registrations (email, name, provider, provider_id, unit_number, phone, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		reg.Email, reg.Name, nullString(reg.Provider), nullString(reg.ProviderID),
		reg.UnitNumber, reg.Phone, reg.Notes, toUnix(reg.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create registration: %w", translateError(err))
	}
	reg.ID, err = res.LastInsertId()
	return err
}

// GetRegistration retrieves a registration by ID, approved or not.
func (s queries) GetRegistration(ctx context.Context, id int64) (*models.Registration, error) {
	reg, err := scanRegistration(s.conn.QueryRowContext(ctx,
		"SELECT "+registrationColumns+" FROM pending_registrations WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err, "registration", id)
	}
	return reg, nil
}

// GetRegistrationByEmail retrieves the registration filed for email.
func (s queries) GetRegistrationByEmail(ctx context.Context, email string) (*models.Registration, error) {
	reg, err := scanRegistration(s.conn.QueryRowContext(ctx,
		"SELECT "+registrationColumns+" FROM pending_registrations WHERE email = ?", email))
	if err != nil {
		return nil, notFound(err, "registration", email)
	}
	return reg, nil
}

// ListPendingRegistrations retrieves unapproved registrations, oldest first.
func (s queries) ListPendingRegistrations(ctx context.Context) ([]*models.Registration, error) {
	rows, err := s.conn.QueryContext(ctx,
		"SELECT "+registrationColumns+` FROM pending_registrations
		 WHERE approved_by IS NULL ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", translateError(err))
	}
	defer rows.Close()

	var regs []*models.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate registrations: %w", err)
	}
	return regs, nil
}

// ApproveRegistration marks a pending registration approved by adminID.
func (s queries) ApproveRegistration(ctx context.Context, id, adminID int64, at time.Time) error {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE pending_registrations SET approved_by = ?, approved_at = ?
		 WHERE id = ? AND approved_by IS NULL`,
		adminID, toUnix(at), id,
	)
	if err != nil {
		return fmt.Errorf("failed to approve registration: %w", translateError(err))
	}
	return requireAffected(res, "pending registration", id)
}
