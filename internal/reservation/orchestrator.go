// Package reservation implements amenity and visitor-parking booking:
// eligibility gating, conflict detection and the create workflows.
//
// Every create runs validate-then-commit: all checks and the insert happen in
// one store transaction, under a lock on the booked resource, so two
// overlapping requests for the same resource can never both succeed.
package reservation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sanagustin/backend/internal/lock"
	"github.com/sanagustin/backend/internal/metrics"
	"github.com/sanagustin/backend/internal/models"
	"github.com/sanagustin/backend/internal/scheduling"
	"github.com/sanagustin/backend/internal/storage"
)

// MaxVisitorStay is the longest window a visitor reservation may cover.
const MaxVisitorStay = 24 * time.Hour

const (
	defaultAttempts = 3
	defaultBackoff  = 25 * time.Millisecond
)

// MaxLockHold bounds how long an Orchestrator built with the default retry
// settings holds a resource lock when each transaction attempt waits up to
// txTimeout for the store. Distributed lock TTLs must exceed it.
func MaxLockHold(txTimeout time.Duration) time.Duration {
	hold := time.Duration(defaultAttempts) * txTimeout
	for attempt := 1; attempt < defaultAttempts; attempt++ {
		hold += time.Duration(attempt) * defaultBackoff
	}
	return hold
}

// Orchestrator composes eligibility, conflict detection and resource
// selection into the reservation workflows.
type Orchestrator struct {
	store    storage.Store
	locker   lock.Locker
	logger   *slog.Logger
	attempts int
	backoff  time.Duration
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLocker replaces the default in-process locker (e.g. with lock.Redis
// when several server instances share one database).
func WithLocker(l lock.Locker) Option {
	return func(o *Orchestrator) { o.locker = l }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithRetry sets how many times a transaction is attempted when the store
// reports it is busy, and the base delay between attempts.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(o *Orchestrator) {
		if attempts > 0 {
			o.attempts = attempts
		}
		o.backoff = backoff
	}
}

// New creates an Orchestrator over store.
func New(store storage.Store, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:    store,
		locker:   lock.NewLocal(),
		logger:   slog.Default(),
		attempts: defaultAttempts,
		backoff:  defaultBackoff,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// CreateAmenityReservation books a common area for unitID over [start, end).
//
// Checks run in order: valid window, unit exists, area exists, unit has no
// unpaid debts, no active reservation on the area overlaps the window.
func (o *Orchestrator) CreateAmenityReservation(ctx context.Context, unitID, areaID int64, start, end time.Time) (*models.AmenityReservation, error) {
	resource := models.ResourceRef{Kind: models.ResourceAmenity, ID: areaID}

	var created *models.AmenityReservation
	err := o.create(ctx, resource, func() error {
		window, err := scheduling.NewInterval(start, end)
		if err != nil {
			return err
		}

		return o.book(ctx, resource.String(), resource.Kind, func(tx storage.Tx) error {
			unit, err := tx.GetUnit(ctx, unitID)
			if err != nil {
				return lookupErr(err)
			}
			area, err := tx.GetCommonArea(ctx, areaID)
			if err != nil {
				return lookupErr(err)
			}

			ok, err := NewEligibilityChecker(tx).CanReserveAmenity(ctx, unit.ID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: unit %s cannot book while it has pending dues", ErrEligibilityDenied, unit.Number)
			}

			conflict, err := NewConflictDetector(tx).HasConflict(ctx, resource, window.Start, window.End)
			if err != nil {
				return err
			}
			if conflict {
				return fmt.Errorf("%w: %s is already booked during %s", ErrResourceUnavailable, area.Name, window)
			}

			r := &models.AmenityReservation{
				AreaID: area.ID,
				UnitID: unit.ID,
				Start:  window.Start,
				End:    window.End,
				State:  models.ReservationActive,
			}
			if err := tx.CreateAmenityReservation(ctx, r); err != nil {
				return err
			}
			r.Area = area
			created = r
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("Amenity reservation created",
		"reservation_id", created.ID,
		"area_id", created.AreaID,
		"unit_id", created.UnitID,
		"start", created.Start,
		"end", created.End,
	)
	return created, nil
}

// CreateVisitorReservation books a spot of the dedicated visitor pool for
// unitID over [start, end). Dues do not block visitor reservations.
//
// Checks run in order: valid window, unit exists, window no longer than
// MaxVisitorStay, spot exists, no active reservation on the spot overlaps.
func (o *Orchestrator) CreateVisitorReservation(ctx context.Context, unitID, spotID int64, start, end time.Time, plate string) (*models.VisitorReservation, error) {
	resource := models.ResourceRef{Kind: models.ResourceVisitorSpot, ID: spotID}

	var created *models.VisitorReservation
	err := o.create(ctx, resource, func() error {
		window, err := scheduling.NewInterval(start, end)
		if err != nil {
			return err
		}

		return o.book(ctx, resource.String(), resource.Kind, func(tx storage.Tx) error {
			unit, err := tx.GetUnit(ctx, unitID)
			if err != nil {
				return lookupErr(err)
			}
			if err := checkVisitorStay(window); err != nil {
				return err
			}
			spot, err := tx.GetVisitorSpot(ctx, spotID)
			if err != nil {
				return lookupErr(err)
			}

			conflict, err := NewConflictDetector(tx).HasConflict(ctx, resource, window.Start, window.End)
			if err != nil {
				return err
			}
			if conflict {
				return fmt.Errorf("%w: visitor spot %s is already booked during %s", ErrResourceUnavailable, spot.Number, window)
			}

			r := &models.VisitorReservation{
				SpotID: spot.ID,
				UnitID: unit.ID,
				Plate:  plate,
				Start:  window.Start,
				End:    window.End,
				State:  models.ReservationActive,
			}
			if err := tx.CreateVisitorReservation(ctx, r); err != nil {
				return err
			}
			r.Spot = spot
			created = r
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("Visitor reservation created",
		"reservation_id", created.ID,
		"spot_id", created.SpotID,
		"unit_id", created.UnitID,
		"start", created.Start,
		"end", created.End,
	)
	return created, nil
}

func checkVisitorStay(window scheduling.Interval) error {
	if d := window.Duration(); d > MaxVisitorStay {
		return fmt.Errorf("%w: visitor reservations may not exceed %s (requested %s)", ErrInvalidDuration, MaxVisitorStay, d)
	}
	return nil
}

// create runs fn and records its outcome for resource's kind.
func (o *Orchestrator) create(ctx context.Context, resource models.ResourceRef, fn func() error) error {
	err := fn()
	outcome := Kind(err)
	if err == nil {
		outcome = "created"
	}
	metrics.Reservations.WithLabelValues(string(resource.Kind), outcome).Inc()

	if err != nil && outcome == "error" {
		o.logger.ErrorContext(ctx, "Reservation failed", "resource", resource.String(), "error", err)
	}
	return err
}

// book runs fn in a store transaction while holding the lock on key.
// Busy transactions are retried with linear backoff; once attempts are
// exhausted the failure is reported as ErrResourceUnavailable.
func (o *Orchestrator) book(ctx context.Context, key string, kind models.ResourceKind, fn func(tx storage.Tx) error) error {
	waitStart := time.Now()
	unlock, err := o.locker.Lock(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to lock %s: %w", key, err)
	}
	defer unlock()
	metrics.LockWait.WithLabelValues(string(kind)).Observe(time.Since(waitStart).Seconds())

	for attempt := 1; ; attempt++ {
		err = o.store.WithTx(ctx, fn)
		if !errors.Is(err, storage.ErrBusy) {
			return err
		}
		if attempt >= o.attempts {
			return fmt.Errorf("%w: store busy after %d attempts: %w", ErrResourceUnavailable, attempt, err)
		}

		metrics.TxRetries.Inc()
		o.logger.WarnContext(ctx, "Reservation transaction busy, retrying", "key", key, "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * o.backoff):
		}
	}
}
