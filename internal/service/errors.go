package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	"github.com/sanagustin/backend/internal/middleware"
	"github.com/sanagustin/backend/internal/models"
	"github.com/sanagustin/backend/internal/reservation"
	"github.com/sanagustin/backend/internal/storage"
)

// ReservationErrorKey is the error metadata key carrying the reservation
// error kind ("not_found", "eligibility_denied", "resource_unavailable",
// "invalid_duration", "invalid_interval"), so clients can branch without
// parsing messages.
const ReservationErrorKey = "Reservation-Error"

var (
	errNoUnit        = errors.New("resident is not linked to a unit")
	errNoParkingSlot = errors.New("unit has no parking slot")
	errDebtPaid      = errors.New("debt is already paid")
	errAdminOnly     = errors.New("only administrators may act for another unit")
	errAdminRequired = errors.New("administrator access required")
)

// reservationError converts a reservation core error into a Connect error.
func reservationError(err error) error {
	code := connect.CodeInternal
	switch {
	case errors.Is(err, reservation.ErrNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, reservation.ErrEligibilityDenied):
		code = connect.CodePermissionDenied
	case errors.Is(err, reservation.ErrResourceUnavailable):
		code = connect.CodeFailedPrecondition
	case errors.Is(err, reservation.ErrInvalidDuration), errors.Is(err, reservation.ErrInvalidInterval):
		code = connect.CodeInvalidArgument
	case errors.Is(err, context.Canceled):
		code = connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		code = connect.CodeDeadlineExceeded
	}

	connectErr := connect.NewError(code, err)
	if kind := reservation.Kind(err); kind != "error" {
		connectErr.Meta().Set(ReservationErrorKey, kind)
	}
	return connectErr
}

// storageError converts a store error into a Connect error.
func storageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrConflict):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, storage.ErrBusy):
		return connect.NewError(connect.CodeUnavailable, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest checks the `validate` tags of a request message.
func validateRequest(msg any) error {
	if err := validate.Struct(msg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return connect.NewError(connect.CodeInvalidArgument,
				fmt.Errorf("invalid %s: failed %q check", f.Field(), f.Tag()))
		}
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	return nil
}

// callerUnit resolves the unit of the authenticated resident.
func callerUnit(ctx context.Context, store storage.Reader) (*models.Unit, error) {
	residentID := middleware.GetResidentID(ctx)
	if residentID == 0 {
		return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("authentication required"))
	}

	unit, err := store.GetUnitByResident(ctx, residentID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, connect.NewError(connect.CodePermissionDenied, errNoUnit)
	}
	if err != nil {
		slog.Error("Failed to resolve caller unit", "resident_id", residentID, "error", err)
		return nil, storageError(err)
	}
	return unit, nil
}

// requireAdmin rejects callers without the administrator claim.
func requireAdmin(ctx context.Context) error {
	if middleware.GetResidentID(ctx) == 0 {
		return connect.NewError(connect.CodeUnauthenticated, errors.New("authentication required"))
	}
	if !middleware.IsAdmin(ctx) {
		return connect.NewError(connect.CodePermissionDenied, errAdminRequired)
	}
	return nil
}
