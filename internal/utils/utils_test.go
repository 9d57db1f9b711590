package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	PasswordCost = bcrypt.MinCost
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash must not equal the password")
	}
	if !CheckPasswordHash("s3cret", hash) {
		t.Error("expected password to match its hash")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("expected wrong password to be rejected")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	a, _ := HashPassword("same")
	b, _ := HashPassword("same")
	if a == b {
		t.Error("expected two hashes of the same password to differ")
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		part, total int
		want        float64
	}{
		{0, 0, 0},
		{0, 5, 0},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{3, 3, 100},
		{1, 8, 12.5},
	}
	for _, tt := range tests {
		if got := Percent(tt.part, tt.total); got != tt.want {
			t.Errorf("Percent(%d, %d) = %v, want %v", tt.part, tt.total, got, tt.want)
		}
	}
}

func newSigner(t *testing.T) *SessionSigner {
	t.Helper()
	s, err := NewSessionSigner([]byte(strings.Repeat("x", 32)), SessionTTL)
	if err != nil {
		t.Fatalf("NewSessionSigner failed: %v", err)
	}
	return s
}

func TestSessionSigner_RoundTrip(t *testing.T) {
	s := newSigner(t)

	token, err := s.Issue(42)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	id, err := s.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if id != 42 {
		t.Errorf("expected doctor id 42, got %d", id)
	}
}

func TestSessionSigner_RejectsRawID(t *testing.T) {
	s := newSigner(t)
	if _, err := s.Verify("42"); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("expected ErrInvalidSession for a bare id, got %v", err)
	}
}

func TestSessionSigner_RejectsOtherSecret(t *testing.T) {
	s := newSigner(t)
	other, _ := NewSessionSigner([]byte(strings.Repeat("y", 32)), SessionTTL)

	token, _ := other.Issue(7)
	if _, err := s.Verify(token); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("expected ErrInvalidSession for foreign signature, got %v", err)
	}
}

func TestSessionSigner_Expiry(t *testing.T) {
	s := newSigner(t)
	issued := time.Now()
	s.now = func() time.Time { return issued }

	token, _ := s.Issue(1)

	s.now = func() time.Time { return issued.Add(SessionTTL - time.Minute) }
	if _, err := s.Verify(token); err != nil {
		t.Errorf("token should still be valid: %v", err)
	}

	s.now = func() time.Time { return issued.Add(SessionTTL + time.Minute) }
	if _, err := s.Verify(token); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("expected expired token to be rejected, got %v", err)
	}
}

func TestSessionSigner_RejectsNoneAlg(t *testing.T) {
	s := newSigner(t)
	claims := jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := s.Verify(token); err == nil {
		t.Error("expected unsigned token to be rejected")
	}
}

func TestNewSessionSigner_EmptySecret(t *testing.T) {
	if _, err := NewSessionSigner(nil, SessionTTL); err == nil {
		t.Error("expected error for empty secret")
	}
}
