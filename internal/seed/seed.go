// Package seed loads the demo community: common areas, visitor spots,
// twenty units, parking slots and a few pending dues.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sanagustin/backend/internal/models"
	"github.com/sanagustin/backend/internal/storage"
)

// ErrAlreadySeeded is returned when the store already holds units.
var ErrAlreadySeeded = errors.New("database already seeded")

// UnitCount is the number of units created, numbered "01" to "20".
const UnitCount = 20

// Options tunes the dataset.
type Options struct {
	// Now anchors debt due dates. Defaults to time.Now().
	Now time.Time

	// AdminEmail, when set, creates an active administrator resident.
	AdminEmail string
	// AdminUnit links the administrator to this unit number.
	AdminUnit string
}

// Summary counts the records created.
type Summary struct {
	Areas        int
	VisitorSpots int
	Units        int
	ParkingSlots int
	Debts        int
	Residents    int
}

// Load creates the dataset in a single transaction.
func Load(ctx context.Context, store storage.Store, opts Options) (*Summary, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	sum := &Summary{}
	err := store.WithTx(ctx, func(tx storage.Tx) error {
		if _, err := tx.GetUnitByNumber(ctx, "01"); err == nil {
			return ErrAlreadySeeded
		} else if !errors.Is(err, storage.ErrNotFound) {
			return err
		}

		for _, a := range commonAreas() {
			if err := tx.CreateCommonArea(ctx, a); err != nil {
				return err
			}
			sum.Areas++
		}

		for i := 1; i <= 5; i++ {
			spot := &models.VisitorSpot{
				Number:      fmt.Sprintf("V%d", i),
				Description: fmt.Sprintf("Lugar de visita %d", i),
				Capacity:    1,
			}
			if err := tx.CreateVisitorSpot(ctx, spot); err != nil {
				return err
			}
			sum.VisitorSpots++
		}

		units := make(map[string]*models.Unit, UnitCount)
		for i := 1; i <= UnitCount; i++ {
			u := &models.Unit{Number: fmt.Sprintf("%02d", i)}
			if err := tx.CreateUnit(ctx, u); err != nil {
				return err
			}
			units[u.Number] = u
			sum.Units++
		}

		for _, s := range parkingSlots(units) {
			if err := tx.CreateParkingSlot(ctx, s); err != nil {
				return err
			}
			sum.ParkingSlots++
		}

		for _, d := range debts(units, opts.Now) {
			if err := tx.CreateDebt(ctx, d); err != nil {
				return err
			}
			sum.Debts++
		}

		if opts.AdminEmail != "" {
			admin := &models.Resident{
				Email:  opts.AdminEmail,
				Name:   "Administración",
				Active: true,
				Admin:  true,
			}
			if err := tx.CreateResident(ctx, admin); err != nil {
				return err
			}
			sum.Residents++

			if opts.AdminUnit != "" {
				u, ok := units[opts.AdminUnit]
				if !ok {
					return fmt.Errorf("%w: unit %s", storage.ErrNotFound, opts.AdminUnit)
				}
				if err := tx.LinkUnitResident(ctx, u.ID, admin.ID); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Database seeded",
		"areas", sum.Areas,
		"visitor_spots", sum.VisitorSpots,
		"units", sum.Units,
		"parking_slots", sum.ParkingSlots,
		"debts", sum.Debts,
	)
	return sum, nil
}

func commonAreas() []*models.CommonArea {
	return []*models.CommonArea{
		{Name: "Palapa", Description: "Área de recreación con palapa y asadores", Location: "Planta baja", Capacity: 20},
		{Name: "Roof Garden A", Description: "Terraza con vista panorámica", Location: "Azotea Torre A", Capacity: 15},
		{Name: "Roof Garden B", Description: "Terraza con vista panorámica", Location: "Azotea Torre B", Capacity: 15},
		{Name: "Sala de Eventos", Description: "Sala para eventos sociales", Location: "Planta baja", Capacity: 50},
		{Name: "Gimnasio", Description: "Área de ejercicio con equipos", Location: "Planta baja", Capacity: 10},
	}
}

func parkingSlots(units map[string]*models.Unit) []*models.ParkingSlot {
	return []*models.ParkingSlot{
		{Number: "E01", Plate: "ABC123", Model: "Toyota Corolla", Color: "Blanco", UnitID: units["01"].ID},
		{Number: "E02", Plate: "DEF456", Model: "Honda Civic", Color: "Negro", UnitID: units["02"].ID},
		{Number: "E03", Plate: "GHI789", Model: "Nissan Sentra", Color: "Gris", UnitID: units["03"].ID},
		{Number: "V01", Visitor: true},
		{Number: "V02", Visitor: true},
		{Number: "V03", Visitor: true},
	}
}

func debts(units map[string]*models.Unit, now time.Time) []*models.Debt {
	const day = 24 * time.Hour
	return []*models.Debt{
		{UnitID: units["01"].ID, Amount: 1500.00, Description: "Mantenimiento mensual", DueDate: now.Add(15 * day)},
		{UnitID: units["05"].ID, Amount: 2300.00, Description: "Mantenimiento mensual", DueDate: now.Add(5 * day)},
		{UnitID: units["10"].ID, Amount: 800.00, Description: "Mantenimiento mensual", DueDate: now.Add(-10 * day)},
	}
}
