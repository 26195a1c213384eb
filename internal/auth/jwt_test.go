package auth

import (
	"strings"
	"testing"
	"time"
)

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("super-secret", time.Hour)

	tok, err := issuer.Issue("user-123", "user@example.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := issuer.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Fatalf("UserID mismatch: got %q want %q", claims.UserID, "user-123")
	}
	if claims.Email != "user@example.com" {
		t.Fatalf("Email mismatch: got %q want %q", claims.Email, "user@example.com")
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("secret", -1*time.Second)

	tok, err := issuer.Issue("u1", "u1@example.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := issuer.Verify(tok); err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenIssuer("right-secret", time.Hour).Issue("u2", "u2@example.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := NewTokenIssuer("wrong-secret", time.Hour).Verify(tok); err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestVerify_MalformedString(t *testing.T) {
	t.Parallel()

	if _, err := NewTokenIssuer("k", time.Hour).Verify("not.a.jwt"); err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}

func TestVerify_Tampered(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("k", time.Hour)
	tok, err := issuer.Issue("u3", "u3@example.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Flip part of the payload segment.
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", tok)
	}
	parts[1] = "x" + parts[1][1:]

	if _, err := issuer.Verify(strings.Join(parts, ".")); err == nil {
		t.Fatalf("expected error for tampered token, got nil")
	}
}
