package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/sanagustin/backend/internal/auth"
	"github.com/sanagustin/backend/internal/middleware"
	"github.com/sanagustin/backend/internal/models"
	"github.com/sanagustin/backend/internal/reservation"
	"github.com/sanagustin/backend/internal/seed"
	"github.com/sanagustin/backend/internal/storage/sqlite"
	"github.com/sanagustin/backend/pkg/api/apiconnect"
)

// testEnv is a running server over the seeded community, with one signed-in
// resident per unit "01" (has dues), "02" and "03", plus an administrator
// without a unit and a resident without a unit.
type testEnv struct {
	store        *sqlite.SQLiteStore
	reservations *apiconnect.ReservationServiceClient
	community    *apiconnect.CommunityServiceClient
	auth         *apiconnect.AuthServiceClient
	tokens       map[string]string
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	if _, err := seed.Load(ctx, store, seed.Options{}); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	env := &testEnv{store: store, tokens: map[string]string{}}

	addResident := func(key, email, unitNumber string, admin bool) {
		r := &models.Resident{Email: email, Name: key, Active: true, Admin: admin}
		if err := store.CreateResident(ctx, r); err != nil {
			t.Fatalf("failed to create resident: %v", err)
		}
		if unitNumber != "" {
			u, err := store.GetUnitByNumber(ctx, unitNumber)
			if err != nil {
				t.Fatalf("failed to get unit %s: %v", unitNumber, err)
			}
			if err := store.LinkUnitResident(ctx, u.ID, r.ID); err != nil {
				t.Fatalf("failed to link unit: %v", err)
			}
		}
		token, err := jwtManager.Generate(r)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}
		env.tokens[key] = token
	}
	addResident("01", "uno@example.com", "01", false)
	addResident("02", "dos@example.com", "02", false)
	addResident("03", "tres@example.com", "03", false)
	addResident("admin", "admin@example.com", "", true)
	addResident("unlinked", "nadie@example.com", "", false)

	orch := reservation.New(store, reservation.WithRetry(5, time.Millisecond))
	interceptors := connect.WithInterceptors(middleware.RequireAuth(jwtManager, apiconnect.AuthServiceRegisterProcedure), middleware.LoggingInterceptor())

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewReservationServiceHandler(NewReservationService(store, orch), interceptors))
	mux.Handle(apiconnect.NewCommunityServiceHandler(NewCommunityService(store), interceptors))
	mux.Handle(apiconnect.NewAuthServiceHandler(NewAuthService(store, slog.Default()), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	env.reservations = apiconnect.NewReservationServiceClient(http.DefaultClient, server.URL)
	env.community = apiconnect.NewCommunityServiceClient(http.DefaultClient, server.URL)
	env.auth = apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL)
	return env
}

// as attaches the bearer token of a test resident to req.
func as[T any](env *testEnv, who string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+env.tokens[who])
	return req
}

// areaID looks up a seeded common area by name.
func (env *testEnv) areaID(t *testing.T, name string) int64 {
	t.Helper()
	areas, err := env.store.ListCommonAreas(context.Background())
	if err != nil {
		t.Fatalf("ListCommonAreas failed: %v", err)
	}
	for _, a := range areas {
		if a.Name == name {
			return a.ID
		}
	}
	t.Fatalf("area %q not seeded", name)
	return 0
}

// spotID looks up a seeded visitor spot by number.
func (env *testEnv) spotID(t *testing.T, number string) int64 {
	t.Helper()
	spots, err := env.store.ListVisitorSpots(context.Background())
	if err != nil {
		t.Fatalf("ListVisitorSpots failed: %v", err)
	}
	for _, s := range spots {
		if s.Number == number {
			return s.ID
		}
	}
	t.Fatalf("spot %q not seeded", number)
	return 0
}

func assertCode(t *testing.T, err error, want connect.Code) *connect.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect error, got %T: %v", err, err)
	}
	if connectErr.Code() != want {
		t.Fatalf("expected code %v, got %v: %v", want, connectErr.Code(), err)
	}
	return connectErr
}

func assertReservationError(t *testing.T, err error, want connect.Code, kind string) {
	t.Helper()
	connectErr := assertCode(t, err, want)
	if got := connectErr.Meta().Get(ReservationErrorKey); got != kind {
		t.Errorf("expected %s %q, got %q", ReservationErrorKey, kind, got)
	}
}

var day = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

func at(hour int) time.Time {
	return day.Add(time.Duration(hour) * time.Hour)
}
