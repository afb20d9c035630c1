package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/sanagustin/backend/internal/models"
	"github.com/sanagustin/backend/internal/reservation"
	"github.com/sanagustin/backend/internal/storage"
	"github.com/sanagustin/backend/pkg/api"
)

// CommunityService implements the Connect CommunityService: the catalog of
// bookable resources and the resident's own unit panel.
type CommunityService struct {
	store storage.Store
}

// NewCommunityService creates a new CommunityService with the given storage backend.
func NewCommunityService(store storage.Store) *CommunityService {
	return &CommunityService{store: store}
}

// ListCommonAreas lists every bookable common area.
func (s *CommunityService) ListCommonAreas(ctx context.Context, req *connect.Request[api.ListCommonAreasRequest]) (*connect.Response[api.ListCommonAreasResponse], error) {
	areas, err := s.store.ListCommonAreas(ctx)
	if err != nil {
		slog.Error("ListCommonAreas failed", "error", err)
		return nil, storageError(err)
	}

	resp := &api.ListCommonAreasResponse{Areas: make([]*api.CommonArea, 0, len(areas))}
	for _, a := range areas {
		resp.Areas = append(resp.Areas, toAPICommonArea(a))
	}
	return connect.NewResponse(resp), nil
}

// ListVisitorSpots lists the dedicated visitor parking pool.
func (s *CommunityService) ListVisitorSpots(ctx context.Context, req *connect.Request[api.ListVisitorSpotsRequest]) (*connect.Response[api.ListVisitorSpotsResponse], error) {
	spots, err := s.store.ListVisitorSpots(ctx)
	if err != nil {
		slog.Error("ListVisitorSpots failed", "error", err)
		return nil, storageError(err)
	}

	resp := &api.ListVisitorSpotsResponse{Spots: make([]*api.VisitorSpot, 0, len(spots))}
	for _, sp := range spots {
		resp.Spots = append(resp.Spots, toAPIVisitorSpot(sp))
	}
	return connect.NewResponse(resp), nil
}

// GetResidentPanel returns the caller's unit, parking slot and pending dues.
func (s *CommunityService) GetResidentPanel(ctx context.Context, req *connect.Request[api.GetResidentPanelRequest]) (*connect.Response[api.GetResidentPanelResponse], error) {
	unit, err := callerUnit(ctx, s.store)
	if err != nil {
		return nil, err
	}
	slog.Info("GetResidentPanel request received", "unit", unit.Number)

	slot, err := s.store.GetResidentParkingSlot(ctx, unit.ID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		slog.Error("GetResidentPanel failed", "unit", unit.Number, "error", err)
		return nil, storageError(err)
	}

	debts, total, err := reservation.NewEligibilityChecker(s.store).Outstanding(ctx, unit.ID)
	if err != nil {
		slog.Error("GetResidentPanel failed", "unit", unit.Number, "error", err)
		return nil, storageError(err)
	}

	resp := &api.GetResidentPanelResponse{
		Unit:        toAPIUnit(unit),
		ParkingSlot: toAPIParkingSlot(slot),
		Debts:       make([]*api.Debt, 0, len(debts)),
		TotalDue:    total,
		CanReserve:  len(debts) == 0,
	}
	for _, d := range debts {
		resp.Debts = append(resp.Debts, toAPIDebt(d))
	}
	return connect.NewResponse(resp), nil
}

// UpdateVehicle changes the vehicle on the caller's own parking slot.
func (s *CommunityService) UpdateVehicle(ctx context.Context, req *connect.Request[api.UpdateVehicleRequest]) (*connect.Response[api.UpdateVehicleResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	unit, err := callerUnit(ctx, s.store)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdateVehicle request received", "unit", unit.Number)

	update := models.VehicleUpdate{Plate: req.Msg.Plate, Model: req.Msg.Model, Color: req.Msg.Color}

	var slot *models.ParkingSlot
	err = s.store.WithTx(ctx, func(tx storage.Tx) error {
		var err error
		slot, err = tx.GetResidentParkingSlot(ctx, unit.ID)
		if err != nil {
			return err
		}
		update.Apply(slot)
		return tx.UpdateParkingSlot(ctx, slot)
	})
	if errors.Is(err, storage.ErrNotFound) {
		return nil, connect.NewError(connect.CodeNotFound, errNoParkingSlot)
	}
	if err != nil {
		slog.Error("UpdateVehicle failed", "unit", unit.Number, "error", err)
		return nil, storageError(err)
	}

	slog.Info("Vehicle updated", "unit", unit.Number, "slot", slot.Number)
	return connect.NewResponse(&api.UpdateVehicleResponse{ParkingSlot: toAPIParkingSlot(slot)}), nil
}

// MarkDebtPaid records the payment of a debt. Administrators only.
func (s *CommunityService) MarkDebtPaid(ctx context.Context, req *connect.Request[api.MarkDebtPaidRequest]) (*connect.Response[api.MarkDebtPaidResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	slog.Info("MarkDebtPaid request received", "debt_id", req.Msg.DebtID)

	var (
		debt       *models.Debt
		canReserve bool
	)
	err := s.store.WithTx(ctx, func(tx storage.Tx) error {
		var err error
		debt, err = tx.GetDebt(ctx, req.Msg.DebtID)
		if err != nil {
			return err
		}
		if debt.Paid {
			return errDebtPaid
		}
		if err := tx.MarkDebtPaid(ctx, debt.ID); err != nil {
			return err
		}
		debt.Paid = true

		canReserve, err = reservation.NewEligibilityChecker(tx).CanReserveAmenity(ctx, debt.UnitID)
		return err
	})
	if errors.Is(err, errDebtPaid) {
		return nil, connect.NewError(connect.CodeFailedPrecondition, err)
	}
	if err != nil {
		slog.Warn("MarkDebtPaid failed", "debt_id", req.Msg.DebtID, "error", err)
		return nil, storageError(err)
	}

	slog.Info("Debt paid", "debt_id", debt.ID, "unit_id", debt.UnitID, "can_reserve", canReserve)
	return connect.NewResponse(&api.MarkDebtPaidResponse{Debt: toAPIDebt(debt), CanReserve: canReserve}), nil
}
