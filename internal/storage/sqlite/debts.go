package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sanagustin/backend/internal/models"
)

// CreateDebt inserts a new debt and sets its ID and CreatedAt.
func (s queries) CreateDebt(ctx context.Context, debt *models.Debt) error {
	if debt.CreatedAt.IsZero() {
		debt.CreatedAt = time.Now().UTC()
	}

	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO debts (unit_id, amount, description, due_at, created_at, paid)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		debt.UnitID, debt.Amount, debt.Description, nullUnix(debt.DueDate),
		toUnix(debt.CreatedAt), debt.Paid,
	)
	if err != nil {
		return fmt.Errorf("failed to create debt: %w", translateError(err))
	}
	debt.ID, err = res.LastInsertId()
	return err
}

// MarkDebtPaid settles a debt.
func (s queries) MarkDebtPaid(ctx context.Context, debtID int64) error {
	res, err := s.conn.ExecContext(ctx, "UPDATE debts SET paid = 1 WHERE id = ?", debtID)
	if err != nil {
		return fmt.Errorf("failed to mark debt paid: %w", translateError(err))
	}
	return requireAffected(res, "debt", debtID)
}

const debtColumns = "id, unit_id, amount, description, due_at, created_at, paid"

func scanDebt(row rowScanner) (*models.Debt, error) {
	debt := &models.Debt{}
	var dueAt sql.NullInt64
	var createdAt int64
	if err := row.Scan(&debt.ID, &debt.UnitID, &debt.Amount, &debt.Description,
		&dueAt, &createdAt, &debt.Paid); err != nil {
		return nil, err
	}
	debt.DueDate = fromNullUnix(dueAt)
	debt.CreatedAt = fromUnix(createdAt)
	return debt, nil
}

// GetDebt retrieves a debt by ID.
func (s queries) GetDebt(ctx context.Context, id int64) (*models.Debt, error) {
	debt, err := scanDebt(s.conn.QueryRowContext(ctx,
		"SELECT "+debtColumns+" FROM debts WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err, "debt", id)
	}
	return debt, nil
}

// ListUnpaidDebts retrieves the unit's unpaid debts, oldest due date first.
func (s queries) ListUnpaidDebts(ctx context.Context, unitID int64) ([]*models.Debt, error) {
	rows, err := s.conn.QueryContext(ctx,
		"SELECT "+debtColumns+` FROM debts WHERE unit_id = ? AND paid = 0
		 ORDER BY due_at IS NULL, due_at, id`,
		unitID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list unpaid debts: %w", translateError(err))
	}
	defer rows.Close()

	var debts []*models.Debt
	for rows.Next() {
		debt, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, debt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debts: %w", err)
	}
	return debts, nil
}
