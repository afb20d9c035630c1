package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sanagustin/backend/internal/models"
)

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	resident := &models.Resident{ID: 7, Email: "ana@example.com", Admin: true}

	token, err := m.Generate(resident)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.ResidentID != 7 || claims.Email != "ana@example.com" || !claims.Admin {
		t.Errorf("Unexpected claims %+v", claims)
	}
	if claims.Subject != "7" {
		t.Errorf("Expected subject 7, got %q", claims.Subject)
	}
	if claims.ID == "" {
		t.Error("Expected token id to be set")
	}

	other, err := m.Generate(resident)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	otherClaims, _ := m.Validate(other)
	if otherClaims.ID == claims.ID {
		t.Error("Expected unique token ids")
	}
}

func TestJWTManagerRejects(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	resident := &models.Resident{ID: 7, Email: "ana@example.com"}

	t.Run("wrong secret", func(t *testing.T) {
		token, _ := NewJWTManager("other-secret", time.Hour).Generate(resident)
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		token, _ := NewJWTManager("test-secret", -time.Minute).Generate(resident)
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := m.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("other signing method", func(t *testing.T) {
		claims := &Claims{ResidentID: 7, RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("SignedString failed: %v", err)
		}
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("missing resident", func(t *testing.T) {
		token, _ := m.Generate(&models.Resident{Email: "nobody@example.com"})
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})
}
