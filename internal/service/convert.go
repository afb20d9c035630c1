package service

import (
	"github.com/sanagustin/backend/internal/models"
	"github.com/sanagustin/backend/pkg/api"
)

func toAPIUnit(u *models.Unit) *api.Unit {
	if u == nil {
		return nil
	}
	return &api.Unit{ID: u.ID, Number: u.Number}
}

func toAPIResident(r *models.Resident) *api.Resident {
	return &api.Resident{ID: r.ID, Email: r.Email, Name: r.Name, Admin: r.Admin}
}

func toAPIRegistration(r *models.Registration) *api.Registration {
	return &api.Registration{
		ID:         r.ID,
		Email:      r.Email,
		Name:       r.Name,
		Provider:   r.Provider,
		UnitNumber: r.UnitNumber,
		Phone:      r.Phone,
		Notes:      r.Notes,
		CreatedAt:  r.CreatedAt,
	}
}

func toAPICommonArea(a *models.CommonArea) *api.CommonArea {
	if a == nil {
		return nil
	}
	return &api.CommonArea{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Location:    a.Location,
		Capacity:    int32(a.Capacity),
	}
}

func toAPIVisitorSpot(s *models.VisitorSpot) *api.VisitorSpot {
	if s == nil {
		return nil
	}
	return &api.VisitorSpot{
		ID:          s.ID,
		Number:      s.Number,
		Description: s.Description,
		Capacity:    int32(s.Capacity),
	}
}

func toAPIParkingSlot(s *models.ParkingSlot) *api.ParkingSlot {
	if s == nil {
		return nil
	}
	return &api.ParkingSlot{
		ID:      s.ID,
		Number:  s.Number,
		Plate:   s.Plate,
		Model:   s.Model,
		Color:   s.Color,
		Visitor: s.Visitor,
	}
}

func toAPIDebt(d *models.Debt) *api.Debt {
	return &api.Debt{
		ID:          d.ID,
		UnitID:      d.UnitID,
		Amount:      d.Amount,
		Description: d.Description,
		DueDate:     d.DueDate,
		Paid:        d.Paid,
	}
}

func toAPIAmenityReservation(r *models.AmenityReservation) *api.AmenityReservation {
	return &api.AmenityReservation{
		ID:        r.ID,
		AreaID:    r.AreaID,
		UnitID:    r.UnitID,
		Start:     r.Start,
		End:       r.End,
		State:     string(r.State),
		CreatedAt: r.CreatedAt,
		Area:      toAPICommonArea(r.Area),
	}
}

func toAPIVisitorReservation(r *models.VisitorReservation) *api.VisitorReservation {
	return &api.VisitorReservation{
		ID:            r.ID,
		SpotID:        r.SpotID,
		ParkingSlotID: r.ParkingSlotID,
		UnitID:        r.UnitID,
		Plate:         r.Plate,
		Start:         r.Start,
		End:           r.End,
		State:         string(r.State),
		CreatedAt:     r.CreatedAt,
		Spot:          toAPIVisitorSpot(r.Spot),
		ParkingSlot:   toAPIParkingSlot(r.ParkingSlot),
	}
}
