package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/sanagustin/backend/pkg/api"
)

func TestListCommonAreas(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.community.ListCommonAreas(context.Background(), as(env, "02", &api.ListCommonAreasRequest{}))
	if err != nil {
		t.Fatalf("ListCommonAreas failed: %v", err)
	}
	if len(resp.Msg.Areas) != 5 {
		t.Fatalf("expected 5 areas, got %d", len(resp.Msg.Areas))
	}
	if resp.Msg.Areas[0].Name != "Palapa" || resp.Msg.Areas[0].Capacity != 20 {
		t.Errorf("unexpected first area %+v", resp.Msg.Areas[0])
	}
}

func TestListVisitorSpots(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.community.ListVisitorSpots(context.Background(), as(env, "02", &api.ListVisitorSpotsRequest{}))
	if err != nil {
		t.Fatalf("ListVisitorSpots failed: %v", err)
	}
	if len(resp.Msg.Spots) != 5 {
		t.Errorf("expected 5 spots, got %d", len(resp.Msg.Spots))
	}
}

func TestGetResidentPanel(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	resp, err := env.community.GetResidentPanel(ctx, as(env, "01", &api.GetResidentPanelRequest{}))
	if err != nil {
		t.Fatalf("GetResidentPanel failed: %v", err)
	}
	panel := resp.Msg
	if panel.Unit.Number != "01" {
		t.Errorf("unit: expected '01', got '%s'", panel.Unit.Number)
	}
	if panel.ParkingSlot == nil || panel.ParkingSlot.Plate != "ABC123" {
		t.Errorf("unexpected parking slot %+v", panel.ParkingSlot)
	}
	if len(panel.Debts) != 1 || panel.TotalDue != 1500.00 {
		t.Errorf("expected one 1500.00 debt, got %d totaling %.2f", len(panel.Debts), panel.TotalDue)
	}
	if panel.CanReserve {
		t.Error("expected unit 01 to be blocked")
	}

	resp, err = env.community.GetResidentPanel(ctx, as(env, "02", &api.GetResidentPanelRequest{}))
	if err != nil {
		t.Fatalf("GetResidentPanel failed: %v", err)
	}
	if !resp.Msg.CanReserve || resp.Msg.TotalDue != 0 || len(resp.Msg.Debts) != 0 {
		t.Errorf("expected unit 02 in good standing, got %+v", resp.Msg)
	}

	_, err = env.community.GetResidentPanel(ctx, as(env, "unlinked", &api.GetResidentPanelRequest{}))
	assertCode(t, err, connect.CodePermissionDenied)
}

func TestUpdateVehicle(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	plate, color := "MNO345", "Rojo"
	resp, err := env.community.UpdateVehicle(ctx, as(env, "02", &api.UpdateVehicleRequest{Plate: &plate, Color: &color}))
	if err != nil {
		t.Fatalf("UpdateVehicle failed: %v", err)
	}
	slot := resp.Msg.ParkingSlot
	if slot.Plate != "MNO345" || slot.Color != "Rojo" {
		t.Errorf("unexpected slot %+v", slot)
	}
	if slot.Model != "Honda Civic" {
		t.Errorf("model: expected untouched 'Honda Civic', got '%s'", slot.Model)
	}

	panel, err := env.community.GetResidentPanel(ctx, as(env, "02", &api.GetResidentPanelRequest{}))
	if err != nil {
		t.Fatalf("GetResidentPanel failed: %v", err)
	}
	if panel.Msg.ParkingSlot.Plate != "MNO345" {
		t.Errorf("expected persisted plate, got %s", panel.Msg.ParkingSlot.Plate)
	}

	long := "THIS-PLATE-IS-FAR-TOO-LONG"
	_, err = env.community.UpdateVehicle(ctx, as(env, "02", &api.UpdateVehicleRequest{Plate: &long}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestUpdateVehicle_NoSlot(t *testing.T) {
	env := setupTestServer(t)
	unit04, err := env.store.GetUnitByNumber(context.Background(), "04")
	if err != nil {
		t.Fatalf("GetUnitByNumber failed: %v", err)
	}
	admin, err := env.store.GetResidentByEmail(context.Background(), "admin@example.com")
	if err != nil {
		t.Fatalf("GetResidentByEmail failed: %v", err)
	}
	if err := env.store.LinkUnitResident(context.Background(), unit04.ID, admin.ID); err != nil {
		t.Fatalf("LinkUnitResident failed: %v", err)
	}

	plate := "PQR678"
	_, err = env.community.UpdateVehicle(context.Background(), as(env, "admin", &api.UpdateVehicleRequest{Plate: &plate}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestMarkDebtPaid(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	unit01, err := env.store.GetUnitByNumber(ctx, "01")
	if err != nil {
		t.Fatalf("GetUnitByNumber failed: %v", err)
	}
	debts, err := env.store.ListUnpaidDebts(ctx, unit01.ID)
	if err != nil || len(debts) != 1 {
		t.Fatalf("expected one seeded debt for unit 01, got %d (%v)", len(debts), err)
	}
	debtID := debts[0].ID

	_, err = env.community.MarkDebtPaid(ctx, as(env, "01", &api.MarkDebtPaidRequest{DebtID: debtID}))
	assertCode(t, err, connect.CodePermissionDenied)

	_, err = env.community.MarkDebtPaid(ctx, connect.NewRequest(&api.MarkDebtPaidRequest{DebtID: debtID}))
	assertCode(t, err, connect.CodeUnauthenticated)

	resp, err := env.community.MarkDebtPaid(ctx, as(env, "admin", &api.MarkDebtPaidRequest{DebtID: debtID}))
	if err != nil {
		t.Fatalf("MarkDebtPaid failed: %v", err)
	}
	if !resp.Msg.Debt.Paid || resp.Msg.Debt.UnitID != unit01.ID || !resp.Msg.CanReserve {
		t.Errorf("unexpected response %+v (debt %+v)", resp.Msg, resp.Msg.Debt)
	}

	_, err = env.community.MarkDebtPaid(ctx, as(env, "admin", &api.MarkDebtPaidRequest{DebtID: debtID}))
	assertCode(t, err, connect.CodeFailedPrecondition)

	_, err = env.community.MarkDebtPaid(ctx, as(env, "admin", &api.MarkDebtPaidRequest{DebtID: 9999}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = env.community.MarkDebtPaid(ctx, as(env, "admin", &api.MarkDebtPaidRequest{}))
	assertCode(t, err, connect.CodeInvalidArgument)

	if _, err := env.reservations.CreateAmenityReservation(ctx, as(env, "01", &api.CreateAmenityReservationRequest{
		AreaID: env.areaID(t, "Palapa"), Start: at(10), End: at(12),
	})); err != nil {
		t.Fatalf("expected unit 01 to book after paying, got %v", err)
	}
}
