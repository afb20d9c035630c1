package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/sanagustin/backend/internal/middleware"
	"github.com/sanagustin/backend/internal/models"
	"github.com/sanagustin/backend/internal/reservation"
	"github.com/sanagustin/backend/internal/storage"
	"github.com/sanagustin/backend/pkg/api"
	"github.com/sanagustin/backend/pkg/api/apiconnect"
)

// ReservationService implements the Connect ReservationService.
// The requesting unit is resolved from the authenticated resident.
type ReservationService struct {
	apiconnect.UnimplementedReservationServiceHandler
	store storage.Reader
	orch  *reservation.Orchestrator
}

// NewReservationService creates a new ReservationService.
func NewReservationService(store storage.Reader, orch *reservation.Orchestrator) *ReservationService {
	return &ReservationService{store: store, orch: orch}
}

// CreateAmenityReservation books a common area for the caller's unit.
func (s *ReservationService) CreateAmenityReservation(ctx context.Context, req *connect.Request[api.CreateAmenityReservationRequest]) (*connect.Response[api.CreateAmenityReservationResponse], error) {
	slog.Info("CreateAmenityReservation request received",
		"area_id", req.Msg.AreaID,
		"start", req.Msg.Start,
		"end", req.Msg.End,
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	unit, err := callerUnit(ctx, s.store)
	if err != nil {
		return nil, err
	}

	r, err := s.orch.CreateAmenityReservation(ctx, unit.ID, req.Msg.AreaID, req.Msg.Start, req.Msg.End)
	if err != nil {
		slog.Warn("CreateAmenityReservation rejected", "unit", unit.Number, "kind", reservation.Kind(err), "error", err)
		return nil, reservationError(err)
	}

	return connect.NewResponse(&api.CreateAmenityReservationResponse{
		Reservation: toAPIAmenityReservation(r),
	}), nil
}

// CreateVisitorReservation books a visitor spot for the caller's unit.
func (s *ReservationService) CreateVisitorReservation(ctx context.Context, req *connect.Request[api.CreateVisitorReservationRequest]) (*connect.Response[api.CreateVisitorReservationResponse], error) {
	slog.Info("CreateVisitorReservation request received",
		"spot_id", req.Msg.SpotID,
		"start", req.Msg.Start,
		"end", req.Msg.End,
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	unit, err := callerUnit(ctx, s.store)
	if err != nil {
		return nil, err
	}

	r, err := s.orch.CreateVisitorReservation(ctx, unit.ID, req.Msg.SpotID, req.Msg.Start, req.Msg.End, req.Msg.Plate)
	if err != nil {
		slog.Warn("CreateVisitorReservation rejected", "unit", unit.Number, "kind", reservation.Kind(err), "error", err)
		return nil, reservationError(err)
	}

	return connect.NewResponse(&api.CreateVisitorReservationResponse{
		Reservation: toAPIVisitorReservation(r),
	}), nil
}

// AssignVisitorParking books the first free visitor-flagged parking slot.
// Administrators may book on behalf of another unit.
func (s *ReservationService) AssignVisitorParking(ctx context.Context, req *connect.Request[api.AssignVisitorParkingRequest]) (*connect.Response[api.AssignVisitorParkingResponse], error) {
	slog.Info("AssignVisitorParking request received",
		"unit_number", req.Msg.UnitNumber,
		"arrival", req.Msg.Arrival,
		"stay_hours", req.Msg.StayHours,
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	unit, err := callerUnit(ctx, s.store)
	if err != nil && !middleware.IsAdmin(ctx) {
		return nil, err
	}

	unitNumber := req.Msg.UnitNumber
	switch {
	case unitNumber == "" && unit == nil:
		return nil, err
	case unitNumber == "":
		unitNumber = unit.Number
	case (unit == nil || unitNumber != unit.Number) && !middleware.IsAdmin(ctx):
		return nil, connect.NewError(connect.CodePermissionDenied, errAdminOnly)
	}

	// Checked before converting so large counts cannot overflow the Duration.
	if int64(req.Msg.StayHours) > int64(reservation.MaxVisitorStay/time.Hour) {
		err := fmt.Errorf("%w: visitor reservations may not exceed %s (requested %d hours)",
			reservation.ErrInvalidDuration, reservation.MaxVisitorStay, req.Msg.StayHours)
		slog.Warn("AssignVisitorParking rejected", "unit", unitNumber, "kind", reservation.Kind(err), "error", err)
		return nil, reservationError(err)
	}
	stay := time.Duration(req.Msg.StayHours) * time.Hour
	r, err := s.orch.AssignVisitorParking(ctx, unitNumber, req.Msg.Arrival, stay, req.Msg.Plate)
	if err != nil {
		slog.Warn("AssignVisitorParking rejected", "unit", unitNumber, "kind", reservation.Kind(err), "error", err)
		return nil, reservationError(err)
	}

	return connect.NewResponse(&api.AssignVisitorParkingResponse{
		Reservation: toAPIVisitorReservation(r),
	}), nil
}

// CheckAvailability reports whether a resource is free in a window.
func (s *ReservationService) CheckAvailability(ctx context.Context, req *connect.Request[api.CheckAvailabilityRequest]) (*connect.Response[api.CheckAvailabilityResponse], error) {
	slog.Info("CheckAvailability request received",
		"resource_kind", req.Msg.ResourceKind,
		"resource_id", req.Msg.ResourceID,
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	kind, err := models.ParseResourceKind(req.Msg.ResourceKind)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	resource := models.ResourceRef{Kind: kind, ID: req.Msg.ResourceID}
	availability, err := s.orch.CheckAvailability(ctx, resource, req.Msg.Start, req.Msg.End)
	if err != nil {
		return nil, reservationError(err)
	}

	return connect.NewResponse(&api.CheckAvailabilityResponse{
		Available:        availability.Available,
		ConflictingCount: int32(availability.ConflictingCount),
	}), nil
}

// ListMyReservations lists every reservation of the caller's unit.
func (s *ReservationService) ListMyReservations(ctx context.Context, req *connect.Request[api.ListMyReservationsRequest]) (*connect.Response[api.ListMyReservationsResponse], error) {
	unit, err := callerUnit(ctx, s.store)
	if err != nil {
		return nil, err
	}
	slog.Info("ListMyReservations request received", "unit", unit.Number)

	list, err := s.orch.ListUnitReservations(ctx, unit.ID)
	if err != nil {
		if errors.Is(err, reservation.ErrNotFound) {
			return nil, reservationError(err)
		}
		slog.Error("ListMyReservations failed", "unit", unit.Number, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	resp := &api.ListMyReservationsResponse{
		Amenity: make([]*api.AmenityReservation, 0, len(list.Amenity)),
		Visitor: make([]*api.VisitorReservation, 0, len(list.Visitor)),
	}
	for _, r := range list.Amenity {
		resp.Amenity = append(resp.Amenity, toAPIAmenityReservation(r))
	}
	for _, r := range list.Visitor {
		resp.Visitor = append(resp.Visitor, toAPIVisitorReservation(r))
	}
	return connect.NewResponse(resp), nil
}
