package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/sanagustin/backend/internal/auth"
	"github.com/sanagustin/backend/internal/middleware"
	"github.com/sanagustin/backend/internal/models"
	"github.com/sanagustin/backend/internal/storage"
	"github.com/sanagustin/backend/pkg/api"
)

var (
	errProviderPair        = errors.New("provider and provider_id must be set together")
	errAlreadyRegistered   = errors.New("a resident with this identity already exists")
	errRegistrationPending = errors.New("a registration for this email already exists")
	errAlreadyApproved     = errors.New("registration was already approved")
	errUnitTaken           = errors.New("unit is already linked to a resident")
)

// AuthService implements the AuthService RPC interface.
// Sign-in happens at the identity provider. This service describes the
// session behind a bearer token and runs the sign-up approval flow: a new
// resident files a registration, and an administrator approves it, which
// creates the resident and links their unit.
type AuthService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(store storage.Store, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:  store,
		logger: logger,
	}
}

// GetCurrentUser returns the currently authenticated resident and their unit.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	residentID := middleware.GetResidentID(ctx)
	if residentID == 0 {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	s.logger.Info("GetCurrentUser request", "resident_id", residentID)

	resident, err := s.store.GetResident(ctx, residentID)
	if err != nil {
		s.logger.Warn("GetCurrentUser failed", "resident_id", residentID, "error", err)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrUnknownResident)
		}
		return nil, storageError(err)
	}
	if !resident.Active {
		return nil, connect.NewError(connect.CodePermissionDenied, auth.ErrInactiveResident)
	}

	resp := &api.GetCurrentUserResponse{Resident: toAPIResident(resident)}
	unit, err := s.store.GetUnitByResident(ctx, residentID)
	switch {
	case err == nil:
		resp.Unit = toAPIUnit(unit)
	case !errors.Is(err, storage.ErrNotFound):
		return nil, storageError(err)
	}
	return connect.NewResponse(resp), nil
}

// Register files a pending registration. It needs no bearer token.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if (req.Msg.Provider == "") != (req.Msg.ProviderID == "") {
		return nil, connect.NewError(connect.CodeInvalidArgument, errProviderPair)
	}

	reg := &models.Registration{
		Email:      strings.ToLower(strings.TrimSpace(req.Msg.Email)),
		Name:       strings.TrimSpace(req.Msg.Name),
		Provider:   req.Msg.Provider,
		ProviderID: req.Msg.ProviderID,
		UnitNumber: req.Msg.UnitNumber,
		Phone:      req.Msg.Phone,
		Notes:      req.Msg.Notes,
	}
	s.logger.Info("Register request", "email", reg.Email, "provider", reg.Provider, "unit_number", reg.UnitNumber)

	err := s.store.WithTx(ctx, func(tx storage.Tx) error {
		_, err := tx.GetResidentByEmail(ctx, reg.Email)
		if err := ensureAbsent(err, errAlreadyRegistered); err != nil {
			return err
		}
		if reg.Provider != "" {
			_, err := tx.GetResidentByProvider(ctx, reg.Provider, reg.ProviderID)
			if err := ensureAbsent(err, errAlreadyRegistered); err != nil {
				return err
			}
		}
		_, err = tx.GetRegistrationByEmail(ctx, reg.Email)
		if err := ensureAbsent(err, errRegistrationPending); err != nil {
			return err
		}
		if reg.UnitNumber != "" {
			if _, err := tx.GetUnitByNumber(ctx, reg.UnitNumber); err != nil {
				return err
			}
		}
		return tx.CreateRegistration(ctx, reg)
	})
	if err != nil {
		s.logger.Warn("Register failed", "email", reg.Email, "error", err)
		return nil, registrationError(err)
	}

	s.logger.Info("Registration filed", "registration_id", reg.ID, "email", reg.Email)
	return connect.NewResponse(&api.RegisterResponse{Registration: toAPIRegistration(reg)}), nil
}

// ListPendingRegistrations lists the registrations awaiting approval.
// Administrators only.
func (s *AuthService) ListPendingRegistrations(ctx context.Context, req *connect.Request[api.ListPendingRegistrationsRequest]) (*connect.Response[api.ListPendingRegistrationsResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	regs, err := s.store.ListPendingRegistrations(ctx)
	if err != nil {
		s.logger.Error("ListPendingRegistrations failed", "error", err)
		return nil, storageError(err)
	}

	resp := &api.ListPendingRegistrationsResponse{Registrations: make([]*api.Registration, 0, len(regs))}
	for _, r := range regs {
		resp.Registrations = append(resp.Registrations, toAPIRegistration(r))
	}
	return connect.NewResponse(resp), nil
}

// ApproveRegistration creates the resident of a pending registration and
// links the unit it names. Administrators only.
func (s *AuthService) ApproveRegistration(ctx context.Context, req *connect.Request[api.ApproveRegistrationRequest]) (*connect.Response[api.ApproveRegistrationResponse], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	adminID := middleware.GetResidentID(ctx)
	s.logger.Info("ApproveRegistration request", "registration_id", req.Msg.RegistrationID, "admin_id", adminID)

	var (
		resident *models.Resident
		unit     *models.Unit
	)
	err := s.store.WithTx(ctx, func(tx storage.Tx) error {
		resident, unit = nil, nil

		reg, err := tx.GetRegistration(ctx, req.Msg.RegistrationID)
		if err != nil {
			return err
		}
		if !reg.Pending() {
			return errAlreadyApproved
		}

		if reg.UnitNumber != "" {
			unit, err = tx.GetUnitByNumber(ctx, reg.UnitNumber)
			if err != nil {
				return err
			}
			if unit.ResidentID != 0 {
				return errUnitTaken
			}
		}

		resident = &models.Resident{
			Email:      reg.Email,
			Name:       reg.Name,
			Provider:   reg.Provider,
			ProviderID: reg.ProviderID,
			Active:     true,
		}
		if err := tx.CreateResident(ctx, resident); err != nil {
			return err
		}
		if unit != nil {
			if err := tx.LinkUnitResident(ctx, unit.ID, resident.ID); err != nil {
				return err
			}
			unit.ResidentID = resident.ID
		}
		return tx.ApproveRegistration(ctx, reg.ID, adminID, time.Now().UTC())
	})
	if err != nil {
		s.logger.Warn("ApproveRegistration failed", "registration_id", req.Msg.RegistrationID, "error", err)
		return nil, registrationError(err)
	}

	s.logger.Info("Registration approved",
		"registration_id", req.Msg.RegistrationID,
		"resident_id", resident.ID,
		"admin_id", adminID,
	)
	return connect.NewResponse(&api.ApproveRegistrationResponse{
		Resident: toAPIResident(resident),
		Unit:     toAPIUnit(unit),
	}), nil
}

// ensureAbsent returns exists when a lookup found its record, nil when it
// reported storage.ErrNotFound, and the lookup error otherwise.
func ensureAbsent(lookupErr, exists error) error {
	switch {
	case lookupErr == nil:
		return exists
	case errors.Is(lookupErr, storage.ErrNotFound):
		return nil
	}
	return lookupErr
}

func registrationError(err error) error {
	switch {
	case errors.Is(err, errAlreadyRegistered), errors.Is(err, errRegistrationPending):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, errAlreadyApproved), errors.Is(err, errUnitTaken):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	}
	return storageError(err)
}
