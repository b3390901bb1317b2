package token

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	m, err := NewManager("test-secret-please-dont-use-in-prod", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	tok, err := m.Issue("user-1", "user@example.com")
	if err != nil {
		t.Fatal(err)
	}

	userID, email, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("userID = %q, want user-1", userID)
	}
	if email != "user@example.com" {
		t.Fatalf("email = %q", email)
	}
}

func TestVerify_Expired(t *testing.T) {
	m, err := NewManager("test-secret-please-dont-use-in-prod", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	// Emitir en el pasado para que exp ya haya vencido al verificar.
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := m.Issue("user-1", "")
	if err != nil {
		t.Fatal(err)
	}

	m.now = time.Now
	if _, _, err := m.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	a, _ := NewManager("secret-a-secret-a-secret-a-secret", time.Hour)
	b, _ := NewManager("secret-b-secret-b-secret-b-secret", time.Hour)

	tok, err := a.Issue("user-1", "")
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := b.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	m, _ := NewManager("test-secret-please-dont-use-in-prod", time.Hour)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, _, err := m.Verify(tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("token %q: expected ErrInvalidToken, got %v", tok, err)
		}
	}
}

func TestNewManager_RequiresSecret(t *testing.T) {
	if _, err := NewManager("", time.Hour); !errors.Is(err, ErrEmptySecret) {
		t.Fatalf("expected ErrEmptySecret, got %v", err)
	}
}
