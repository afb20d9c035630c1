package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sanagustin/backend/internal/models"
	"github.com/sanagustin/backend/internal/scheduling"
	"github.com/sanagustin/backend/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "sanagustin-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustWindow(t *testing.T, start time.Time, d time.Duration) scheduling.Interval {
	t.Helper()
	iv, err := scheduling.IntervalFor(start, d)
	if err != nil {
		t.Fatalf("IntervalFor failed: %v", err)
	}
	return iv
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	unit := &models.Unit{Number: "01"}
	if err := store.CreateUnit(ctx, unit); err != nil {
		t.Fatalf("CreateUnit failed: %v", err)
	}
	area := &models.CommonArea{Name: "Palapa", Description: "Palapa y asadores", Location: "Planta baja", Capacity: 20}
	if err := store.CreateCommonArea(ctx, area); err != nil {
		t.Fatalf("CreateCommonArea failed: %v", err)
	}

	t.Run("CreateUnit assigns ID", func(t *testing.T) {
		if unit.ID == 0 {
			t.Error("Expected unit ID to be generated")
		}
		got, err := store.GetUnitByNumber(ctx, "01")
		if err != nil {
			t.Fatalf("GetUnitByNumber failed: %v", err)
		}
		if got.ID != unit.ID {
			t.Errorf("ID mismatch: got %d, want %d", got.ID, unit.ID)
		}
		if got.HasResident() {
			t.Error("Expected new unit to have no resident")
		}
	})

	t.Run("lookups return ErrNotFound", func(t *testing.T) {
		if _, err := store.GetUnit(ctx, 9999); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetUnit: expected ErrNotFound, got %v", err)
		}
		if _, err := store.GetCommonArea(ctx, 9999); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetCommonArea: expected ErrNotFound, got %v", err)
		}
		if _, err := store.GetVisitorSpot(ctx, 9999); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetVisitorSpot: expected ErrNotFound, got %v", err)
		}
		if _, err := store.GetResidentByEmail(ctx, "nobody@example.com"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetResidentByEmail: expected ErrNotFound, got %v", err)
		}
	})

	t.Run("resident link", func(t *testing.T) {
		resident := &models.Resident{
			Email: "ana@example.com", Name: "Ana", Provider: "google", ProviderID: "g-1", Active: true,
		}
		if err := store.CreateResident(ctx, resident); err != nil {
			t.Fatalf("CreateResident failed: %v", err)
		}
		if err := store.LinkUnitResident(ctx, unit.ID, resident.ID); err != nil {
			t.Fatalf("LinkUnitResident failed: %v", err)
		}

		got, err := store.GetUnitByResident(ctx, resident.ID)
		if err != nil {
			t.Fatalf("GetUnitByResident failed: %v", err)
		}
		if got.Number != "01" {
			t.Errorf("Unit number: got %s, want 01", got.Number)
		}

		byProvider, err := store.GetResidentByProvider(ctx, "google", "g-1")
		if err != nil {
			t.Fatalf("GetResidentByProvider failed: %v", err)
		}
		if !byProvider.Active || byProvider.Admin {
			t.Errorf("Flags mismatch: active=%v admin=%v", byProvider.Active, byProvider.Admin)
		}
	})

	t.Run("one resident slot per unit", func(t *testing.T) {
		first := &models.ParkingSlot{Number: "E01", Plate: "ABC123", UnitID: unit.ID}
		if err := store.CreateParkingSlot(ctx, first); err != nil {
			t.Fatalf("CreateParkingSlot failed: %v", err)
		}
		second := &models.ParkingSlot{Number: "E99", UnitID: unit.ID}
		err := store.CreateParkingSlot(ctx, second)
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("Expected ErrConflict for second slot, got %v", err)
		}

		got, err := store.GetResidentParkingSlot(ctx, unit.ID)
		if err != nil {
			t.Fatalf("GetResidentParkingSlot failed: %v", err)
		}
		if got.Plate != "ABC123" {
			t.Errorf("Plate: got %s, want ABC123", got.Plate)
		}
	})

	t.Run("visitor slots listed in id order", func(t *testing.T) {
		for _, number := range []string{"V01", "V02", "V03"} {
			if err := store.CreateParkingSlot(ctx, &models.ParkingSlot{Number: number, Visitor: true}); err != nil {
				t.Fatalf("CreateParkingSlot %s failed: %v", number, err)
			}
		}
		slots, err := store.ListVisitorParkingSlots(ctx)
		if err != nil {
			t.Fatalf("ListVisitorParkingSlots failed: %v", err)
		}
		if len(slots) != 3 {
			t.Fatalf("Expected 3 visitor slots, got %d", len(slots))
		}
		for i := 1; i < len(slots); i++ {
			if slots[i-1].ID >= slots[i].ID {
				t.Errorf("Slots not in ascending id order: %d then %d", slots[i-1].ID, slots[i].ID)
			}
		}
	})

	t.Run("visitor slot cannot belong to a unit", func(t *testing.T) {
		err := store.CreateParkingSlot(ctx, &models.ParkingSlot{Number: "VX", Visitor: true, UnitID: unit.ID})
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("Expected ErrConflict, got %v", err)
		}
	})

	t.Run("unpaid debts", func(t *testing.T) {
		debt := &models.Debt{UnitID: unit.ID, Amount: 1500, Description: "Mantenimiento mensual",
			DueDate: time.Now().Add(15 * 24 * time.Hour)}
		if err := store.CreateDebt(ctx, debt); err != nil {
			t.Fatalf("CreateDebt failed: %v", err)
		}

		debts, err := store.ListUnpaidDebts(ctx, unit.ID)
		if err != nil {
			t.Fatalf("ListUnpaidDebts failed: %v", err)
		}
		if len(debts) != 1 || debts[0].Amount != 1500 {
			t.Fatalf("Unexpected debts: %+v", debts)
		}

		if err := store.MarkDebtPaid(ctx, debt.ID); err != nil {
			t.Fatalf("MarkDebtPaid failed: %v", err)
		}
		debts, err = store.ListUnpaidDebts(ctx, unit.ID)
		if err != nil {
			t.Fatalf("ListUnpaidDebts failed: %v", err)
		}
		if len(debts) != 0 {
			t.Errorf("Expected no unpaid debts, got %d", len(debts))
		}
	})

	t.Run("active amenity reservations filtered by window and state", func(t *testing.T) {
		start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
		active := &models.AmenityReservation{AreaID: area.ID, UnitID: unit.ID, Start: start, End: start.Add(2 * time.Hour)}
		if err := store.CreateAmenityReservation(ctx, active); err != nil {
			t.Fatalf("CreateAmenityReservation failed: %v", err)
		}
		if active.ID == 0 || active.State != models.ReservationActive {
			t.Fatalf("Expected ID and active state, got %+v", active)
		}

		cancelled := &models.AmenityReservation{AreaID: area.ID, UnitID: unit.ID, Start: start, End: start.Add(2 * time.Hour)}
		if err := store.CreateAmenityReservation(ctx, cancelled); err != nil {
			t.Fatalf("CreateAmenityReservation failed: %v", err)
		}
		if err := store.SetReservationState(ctx, models.ResourceAmenity, cancelled.ID, models.ReservationCancelled); err != nil {
			t.Fatalf("SetReservationState failed: %v", err)
		}

		got, err := store.ListActiveAmenityReservations(ctx, area.ID, mustWindow(t, start.Add(time.Hour), 2*time.Hour))
		if err != nil {
			t.Fatalf("ListActiveAmenityReservations failed: %v", err)
		}
		if len(got) != 1 || got[0].ID != active.ID {
			t.Fatalf("Expected only the active reservation, got %+v", got)
		}
		if !got[0].Start.Equal(start) {
			t.Errorf("Start mismatch: got %s, want %s", got[0].Start, start)
		}

		// A window touching the end of the booking does not intersect it.
		touching, err := store.ListActiveAmenityReservations(ctx, area.ID, mustWindow(t, start.Add(2*time.Hour), time.Hour))
		if err != nil {
			t.Fatalf("ListActiveAmenityReservations failed: %v", err)
		}
		if len(touching) != 0 {
			t.Errorf("Expected no reservations for touching window, got %d", len(touching))
		}
	})

	t.Run("reservation window must not be empty", func(t *testing.T) {
		start := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
		err := store.CreateAmenityReservation(ctx, &models.AmenityReservation{AreaID: area.ID, UnitID: unit.ID, Start: start, End: start})
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("Expected ErrConflict, got %v", err)
		}
	})

	t.Run("visitor reservations keep spot and slot pools apart", func(t *testing.T) {
		spot := &models.VisitorSpot{Number: "V1", Description: "Lugar de visita 1", Capacity: 1}
		if err := store.CreateVisitorSpot(ctx, spot); err != nil {
			t.Fatalf("CreateVisitorSpot failed: %v", err)
		}
		start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
		r := &models.VisitorReservation{SpotID: spot.ID, UnitID: unit.ID, Plate: "XYZ987", Start: start, End: start.Add(4 * time.Hour)}
		if err := store.CreateVisitorReservation(ctx, r); err != nil {
			t.Fatalf("CreateVisitorReservation failed: %v", err)
		}

		window := mustWindow(t, start, time.Hour)
		onSpot, err := store.ListActiveVisitorReservations(ctx, models.ResourceRef{Kind: models.ResourceVisitorSpot, ID: spot.ID}, window)
		if err != nil {
			t.Fatalf("ListActiveVisitorReservations failed: %v", err)
		}
		if len(onSpot) != 1 || onSpot[0].Plate != "XYZ987" {
			t.Fatalf("Unexpected spot reservations: %+v", onSpot)
		}

		onSlot, err := store.ListActiveVisitorReservations(ctx, models.ResourceRef{Kind: models.ResourceParkingSlot, ID: spot.ID}, window)
		if err != nil {
			t.Fatalf("ListActiveVisitorReservations failed: %v", err)
		}
		if len(onSlot) != 0 {
			t.Errorf("Expected no parking slot reservations, got %d", len(onSlot))
		}

		byUnit, err := store.ListVisitorReservationsByUnit(ctx, unit.ID)
		if err != nil {
			t.Fatalf("ListVisitorReservationsByUnit failed: %v", err)
		}
		if len(byUnit) != 1 {
			t.Errorf("Expected 1 visitor reservation for unit, got %d", len(byUnit))
		}
	})
}

func TestWithTx(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		err := store.WithTx(ctx, func(tx storage.Tx) error {
			return tx.CreateUnit(ctx, &models.Unit{Number: "02"})
		})
		if err != nil {
			t.Fatalf("WithTx failed: %v", err)
		}
		if _, err := store.GetUnitByNumber(ctx, "02"); err != nil {
			t.Errorf("Expected committed unit, got %v", err)
		}
	})

	t.Run("rolls back on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := store.WithTx(ctx, func(tx storage.Tx) error {
			if err := tx.CreateUnit(ctx, &models.Unit{Number: "03"}); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("Expected callback error, got %v", err)
		}
		if _, err := store.GetUnitByNumber(ctx, "03"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected rolled back unit to be missing, got %v", err)
		}
	})
}

func TestResidentsWithoutProvider(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, email := range []string{"uno@example.com", "dos@example.com"} {
		if err := store.CreateResident(ctx, &models.Resident{Email: email, Name: email, Active: true}); err != nil {
			t.Fatalf("CreateResident(%s) failed: %v", email, err)
		}
	}

	got, err := store.GetResidentByEmail(ctx, "dos@example.com")
	if err != nil {
		t.Fatalf("GetResidentByEmail failed: %v", err)
	}
	if got.Provider != "" || got.ProviderID != "" {
		t.Errorf("Expected empty provider, got %q/%q", got.Provider, got.ProviderID)
	}

	if _, err := store.GetResidentByProvider(ctx, "", ""); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for empty provider, got %v", err)
	}

	err = store.CreateResident(ctx, &models.Resident{Email: "uno@example.com", Name: "dup"})
	if !errors.Is(err, storage.ErrConflict) {
		t.Errorf("Expected ErrConflict for duplicate email, got %v", err)
	}
}

func TestRegistrations(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	admin := &models.Resident{Email: "admin@example.com", Name: "Admin", Active: true, Admin: true}
	if err := store.CreateResident(ctx, admin); err != nil {
		t.Fatalf("CreateResident failed: %v", err)
	}

	first := &models.Registration{Email: "ana@example.com", Name: "Ana", Provider: "google", ProviderID: "g-1", UnitNumber: "04"}
	second := &models.Registration{Email: "luis@example.com", Name: "Luis", UnitNumber: "05", Phone: "555-0101"}
	for _, reg := range []*models.Registration{first, second} {
		if err := store.CreateRegistration(ctx, reg); err != nil {
			t.Fatalf("CreateRegistration(%s) failed: %v", reg.Email, err)
		}
		if reg.ID == 0 || reg.CreatedAt.IsZero() {
			t.Fatalf("Expected ID and CreatedAt, got %+v", reg)
		}
	}

	err := store.CreateRegistration(ctx, &models.Registration{Email: "ana@example.com", Name: "dup"})
	if !errors.Is(err, storage.ErrConflict) {
		t.Errorf("Expected ErrConflict for duplicate email, got %v", err)
	}

	got, err := store.GetRegistrationByEmail(ctx, "luis@example.com")
	if err != nil {
		t.Fatalf("GetRegistrationByEmail failed: %v", err)
	}
	if got.ID != second.ID || got.Phone != "555-0101" || got.Provider != "" || !got.Pending() {
		t.Errorf("Unexpected registration: %+v", got)
	}

	pending, err := store.ListPendingRegistrations(ctx)
	if err != nil {
		t.Fatalf("ListPendingRegistrations failed: %v", err)
	}
	if len(pending) != 2 || pending[0].ID != first.ID {
		t.Fatalf("Expected both registrations oldest first, got %+v", pending)
	}

	approvedAt := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	if err := store.ApproveRegistration(ctx, first.ID, admin.ID, approvedAt); err != nil {
		t.Fatalf("ApproveRegistration failed: %v", err)
	}
	if err := store.ApproveRegistration(ctx, first.ID, admin.ID, approvedAt); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound approving twice, got %v", err)
	}

	got, err = store.GetRegistration(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetRegistration failed: %v", err)
	}
	if got.Pending() || got.ApprovedBy != admin.ID || !got.ApprovedAt.Equal(approvedAt) {
		t.Errorf("Expected approval recorded, got %+v", got)
	}

	pending, err = store.ListPendingRegistrations(ctx)
	if err != nil {
		t.Fatalf("ListPendingRegistrations failed: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != second.ID {
		t.Errorf("Expected only the second registration pending, got %+v", pending)
	}

	if _, err := store.GetRegistration(ctx, 999); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestGetDebt(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	unit := &models.Unit{Number: "01"}
	if err := store.CreateUnit(ctx, unit); err != nil {
		t.Fatalf("CreateUnit failed: %v", err)
	}
	debt := &models.Debt{UnitID: unit.ID, Amount: 800, Description: "Multa"}
	if err := store.CreateDebt(ctx, debt); err != nil {
		t.Fatalf("CreateDebt failed: %v", err)
	}

	got, err := store.GetDebt(ctx, debt.ID)
	if err != nil {
		t.Fatalf("GetDebt failed: %v", err)
	}
	if got.Amount != 800 || got.Paid || !got.DueDate.IsZero() {
		t.Errorf("Unexpected debt: %+v", got)
	}

	if err := store.MarkDebtPaid(ctx, debt.ID); err != nil {
		t.Fatalf("MarkDebtPaid failed: %v", err)
	}
	got, err = store.GetDebt(ctx, debt.ID)
	if err != nil {
		t.Fatalf("GetDebt failed: %v", err)
	}
	if !got.Paid {
		t.Error("Expected debt to be paid")
	}

	if _, err := store.GetDebt(ctx, 999); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
