package helpers

import (
	"strings"
	"testing"
	"time"
)

func TestTokenRoundtrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	hash, err := HashPassword("pw123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	token, exp, err := m.Issue("alice", "a@x.com", hash)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expected future expiry, got %v", exp)
	}

	claims, err := m.Resolve(token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if claims.Username != "alice" {
		t.Fatalf("expected username alice, got %q", claims.Username)
	}
	if claims.Email != "a@x.com" {
		t.Fatalf("expected email a@x.com, got %q", claims.Email)
	}
	if claims.PasswordFingerprint != Fingerprint(hash) {
		t.Fatalf("fingerprint mismatch")
	}
}

func TestTokenZeroTTLExpires(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, _, err := m.IssueWithTTL("alice", "a@x.com", "hash", 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := m.Resolve(token); err != ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenTampered(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, _, err := m.Issue("alice", "a@x.com", "hash")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(parts))
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := m.Resolve(tampered); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}

	if _, err := m.Resolve("not-a-token"); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for garbage, got %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one", time.Hour)
	verifier := NewTokenManager("secret-two", time.Hour)

	token, _, err := issuer.Issue("alice", "a@x.com", "hash")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Resolve(token); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("pw123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "pw123" {
		t.Fatalf("hash must not equal the plain password")
	}
	if !CompareHashAndPassword(hash, "pw123") {
		t.Fatalf("expected password to verify")
	}
	if CompareHashAndPassword(hash, "wrong") {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestFingerprintChangesWithHash(t *testing.T) {
	h1, _ := HashPassword("pw123")
	h2, _ := HashPassword("other")
	if Fingerprint(h1) == Fingerprint(h2) {
		t.Fatalf("expected distinct fingerprints")
	}
}
