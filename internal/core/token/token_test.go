package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssuer_RequiresSecret(t *testing.T) {
	if _, err := NewIssuer("", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestIssueAndVerify_Roundtrip(t *testing.T) {
	iss, err := NewIssuer("secret", time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}

	now := time.Now()
	tok, err := iss.Issue("user-123", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	sub, err := iss.Verify(tok, now)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if sub != "user-123" {
		t.Fatalf("subject mismatch: got %q want %q", sub, "user-123")
	}
}

func TestVerify_ExpiryBoundary(t *testing.T) {
	iss, _ := NewIssuer("secret", time.Hour)
	t0 := time.Now()
	tok, err := iss.Issue("u1", t0)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := iss.Verify(tok, t0.Add(time.Hour-time.Second)); err != nil {
		t.Fatalf("expected valid one second before expiry, got %v", err)
	}

	_, err = iss.Verify(tok, t0.Add(time.Hour+time.Second))
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired one second after expiry, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	right, _ := NewIssuer("right-secret", time.Hour)
	wrong, _ := NewIssuer("wrong-secret", time.Hour)

	now := time.Now()
	tok, err := right.Issue("u2", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = wrong.Verify(tok, now)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for wrong secret, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	iss, _ := NewIssuer("secret", time.Hour)
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := iss.Verify(tok, time.Now()); !errors.Is(err, ErrInvalid) {
			t.Fatalf("token %q: expected ErrInvalid, got %v", tok, err)
		}
	}
}

func TestVerify_RejectsUnexpectedAlg(t *testing.T) {
	// A token signed with "none" must never verify, even with a matching payload.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "u3",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	iss, _ := NewIssuer("secret", time.Hour)
	if _, err := iss.Verify(tok, time.Now()); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for alg=none token, got %v", err)
	}
}

func TestVerify_MissingSubject(t *testing.T) {
	iss, _ := NewIssuer("secret", time.Hour)
	now := time.Now()
	tok, err := iss.Issue("", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := iss.Verify(tok, now); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for empty subject, got %v", err)
	}
}
