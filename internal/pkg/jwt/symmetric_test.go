package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeClock struct{ now time.Time }

func (f fakeClock) Now() time.Time { return f.now }

type fakeUUID struct{}

func (fakeUUID) Generate() string { return "0199aa00-0000-7000-8000-000000000001" }

func newTestJWT(t *testing.T, now time.Time) *Symmetric {
	t.Helper()

	s, err := NewHS512(Config{
		Secret:    []byte(strings.Repeat("s", 64)),
		Issuer:    "authbite",
		Audiences: []string{"authbite-api"},
		TTL:       30 * 24 * time.Hour,
		Clock:     fakeClock{now: now},
		UUID:      fakeUUID{},
	})
	if err != nil {
		t.Fatalf("NewHS512() error = %v", err)
	}
	return s
}

func TestNewHS512_ShortSecret(t *testing.T) {
	_, err := NewHS512(Config{Secret: []byte("short")})
	if !errors.Is(err, ErrSigningKeyTooShort) {
		t.Fatalf("NewHS512() error = %v, want ErrSigningKeyTooShort", err)
	}
}

func TestSymmetric_GenerateVerify(t *testing.T) {
	now := time.Now()
	s := newTestJWT(t, now)

	token, err := s.Generate(42, "user")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := s.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.UserRole != "user" {
		t.Errorf("UserRole = %q, want %q", claims.UserRole, "user")
	}
	if got := claims.ExpiresAt.Time; got.Sub(now) < 29*24*time.Hour {
		t.Errorf("ExpiresAt = %v, want about 30 days after issue", got)
	}
}

func TestSymmetric_VerifyExpired(t *testing.T) {
	issued := newTestJWT(t, time.Now().Add(-31*24*time.Hour))

	token, err := issued.Generate(42, "user")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	verifier := newTestJWT(t, time.Now())
	if _, err := verifier.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("Verify() error = %v, want ErrTokenExpired", err)
	}
}

func TestSymmetric_VerifyTampered(t *testing.T) {
	s := newTestJWT(t, time.Now())

	token, err := s.Generate(42, "user")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := s.Verify(tampered); err == nil {
		t.Fatal("Verify() error = nil for tampered token, want error")
	}
}
