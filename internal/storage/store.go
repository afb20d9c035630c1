// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/sanagustin/backend/internal/models"
	"github.com/sanagustin/backend/internal/scheduling"
)

var (
	// ErrNotFound is returned by point lookups when no record matches.
	ErrNotFound = errors.New("record not found")

	// ErrBusy is returned when a transaction could not acquire the database
	// write lock or was aborted by a concurrent writer. The operation is
	// safe to retry.
	ErrBusy = errors.New("database busy")

	// ErrConflict is returned when a write violates a uniqueness or
	// integrity constraint.
	ErrConflict = errors.New("constraint violation")
)

// Reader defines the lookups the reservation core needs.
// Both the store and its transactions implement it.
type Reader interface {
	GetUnit(ctx context.Context, id int64) (*models.Unit, error)
	GetUnitByNumber(ctx context.Context, number string) (*models.Unit, error)
	GetUnitByResident(ctx context.Context, residentID int64) (*models.Unit, error)

	GetResident(ctx context.Context, id int64) (*models.Resident, error)
	GetResidentByEmail(ctx context.Context, email string) (*models.Resident, error)
	GetResidentByProvider(ctx context.Context, provider, providerID string) (*models.Resident, error)

	GetCommonArea(ctx context.Context, id int64) (*models.CommonArea, error)
	ListCommonAreas(ctx context.Context) ([]*models.CommonArea, error)

	GetVisitorSpot(ctx context.Context, id int64) (*models.VisitorSpot, error)
	ListVisitorSpots(ctx context.Context) ([]*models.VisitorSpot, error)

	GetParkingSlot(ctx context.Context, id int64) (*models.ParkingSlot, error)
	GetResidentParkingSlot(ctx context.Context, unitID int64) (*models.ParkingSlot, error)
	// ListVisitorParkingSlots returns the visitor-flagged slots ordered by ascending id.
	ListVisitorParkingSlots(ctx context.Context) ([]*models.ParkingSlot, error)

	GetDebt(ctx context.Context, id int64) (*models.Debt, error)
	// ListUnpaidDebts returns the unit's debts with Paid == false.
	ListUnpaidDebts(ctx context.Context, unitID int64) ([]*models.Debt, error)

	// ListActiveAmenityReservations returns active reservations on the area
	// whose window intersects within.
	ListActiveAmenityReservations(ctx context.Context, areaID int64, within scheduling.Interval) ([]*models.AmenityReservation, error)
	// ListActiveVisitorReservations returns active visitor reservations on the
	// resource (a visitor spot or a visitor parking slot) whose window
	// intersects within.
	ListActiveVisitorReservations(ctx context.Context, resource models.ResourceRef, within scheduling.Interval) ([]*models.VisitorReservation, error)

	ListAmenityReservationsByUnit(ctx context.Context, unitID int64) ([]*models.AmenityReservation, error)
	ListVisitorReservationsByUnit(ctx context.Context, unitID int64) ([]*models.VisitorReservation, error)

	GetRegistration(ctx context.Context, id int64) (*models.Registration, error)
	GetRegistrationByEmail(ctx context.Context, email string) (*models.Registration, error)
	// ListPendingRegistrations returns unapproved registrations, oldest first.
	ListPendingRegistrations(ctx context.Context) ([]*models.Registration, error)
}

// Writer defines the mutations of the domain store.
type Writer interface {
	CreateResident(ctx context.Context, resident *models.Resident) error
	CreateUnit(ctx context.Context, unit *models.Unit) error
	LinkUnitResident(ctx context.Context, unitID, residentID int64) error
	CreateCommonArea(ctx context.Context, area *models.CommonArea) error
	CreateVisitorSpot(ctx context.Context, spot *models.VisitorSpot) error
	CreateParkingSlot(ctx context.Context, slot *models.ParkingSlot) error
	UpdateParkingSlot(ctx context.Context, slot *models.ParkingSlot) error
	CreateDebt(ctx context.Context, debt *models.Debt) error
	MarkDebtPaid(ctx context.Context, debtID int64) error

	// CreateAmenityReservation and CreateVisitorReservation persist a new
	// reservation and populate its ID and CreatedAt. They do not check for
	// conflicts; callers validate inside the same transaction.
	CreateAmenityReservation(ctx context.Context, r *models.AmenityReservation) error
	CreateVisitorReservation(ctx context.Context, r *models.VisitorReservation) error

	CreateRegistration(ctx context.Context, reg *models.Registration) error
	// ApproveRegistration records the approving administrator. It reports
	// ErrNotFound when the registration is missing or already approved.
	ApproveRegistration(ctx context.Context, id, adminID int64, at time.Time) error
}

// Tx is a unit of work opened by Store.WithTx.
type Tx interface {
	Reader
	Writer
}

// Store defines the interface for the domain store.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the reservation core.
type Store interface {
	Reader
	Writer

	// WithTx runs fn inside a transaction that is serializable with respect
	// to every other WithTx call. The transaction commits when fn returns
	// nil and rolls back otherwise. Lock acquisition failures are reported
	// as ErrBusy.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any resources held by the store.
	Close() error
}
