package auth

import (
	"testing"
	"time"

	"github.com/dfryer1193/goslider/slider/domain"
)

func newTestSigner(t *testing.T) *Signer {
	t.Helper()
	s, err := NewSigner("test-secret", time.Hour, time.Hour)
	if err != nil {
		t.Fatalf("NewSigner failed: %v", err)
	}
	return s
}

func TestNewSignerRequiresSecret(t *testing.T) {
	if _, err := NewSigner("", time.Hour, time.Hour); err == nil {
		t.Error("expected error for empty secret")
	}
}

func TestSessionRoundTrip(t *testing.T) {
	s := newTestSigner(t)

	token, err := s.IssueSession(&domain.User{ID: "u1", Role: domain.RoleAuthor})
	if err != nil {
		t.Fatalf("IssueSession failed: %v", err)
	}

	p, err := s.VerifySession(token)
	if err != nil {
		t.Fatalf("VerifySession failed: %v", err)
	}
	if p.UserID != "u1" || p.Role != domain.RoleAuthor {
		t.Errorf("principal = %+v", p)
	}
}

func TestSessionRejected(t *testing.T) {
	s := newTestSigner(t)
	other, _ := NewSigner("other-secret", time.Hour, time.Hour)

	foreign, _ := other.IssueSession(&domain.User{ID: "u1", Role: domain.RoleEditor})
	nonce, _ := s.IssueNonce("save_slider", "u1", "s1")

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.jwt"},
		{name: "wrong secret", token: foreign},
		{name: "nonce used as session", token: nonce},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.VerifySession(tt.token); err == nil {
				t.Error("expected session to be rejected")
			}
		})
	}
}

func TestSessionExpires(t *testing.T) {
	s := newTestSigner(t)
	token, _ := s.IssueSession(&domain.User{ID: "u1", Role: domain.RoleEditor})

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := s.VerifySession(token); err == nil {
		t.Error("expected expired session to be rejected")
	}
}

func TestVerifyNonce(t *testing.T) {
	s := newTestSigner(t)
	nonce, err := s.IssueNonce("save_slider", "u1", "s1")
	if err != nil {
		t.Fatalf("IssueNonce failed: %v", err)
	}
	session, _ := s.IssueSession(&domain.User{ID: "u1", Role: domain.RoleEditor})

	tests := []struct {
		name   string
		nonce  string
		action string
		user   string
		object string
		want   bool
	}{
		{name: "valid", nonce: nonce, action: "save_slider", user: "u1", object: "s1", want: true},
		{name: "missing", nonce: "", action: "save_slider", user: "u1", object: "s1", want: false},
		{name: "tampered", nonce: nonce + "x", action: "save_slider", user: "u1", object: "s1", want: false},
		{name: "other action", nonce: nonce, action: "delete_slider", user: "u1", object: "s1", want: false},
		{name: "other user", nonce: nonce, action: "save_slider", user: "u2", object: "s1", want: false},
		{name: "other record", nonce: nonce, action: "save_slider", user: "u1", object: "s2", want: false},
		{name: "session token", nonce: session, action: "save_slider", user: "u1", object: "s1", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.VerifyNonce(tt.nonce, tt.action, tt.user, tt.object); got != tt.want {
				t.Errorf("VerifyNonce() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNonceExpires(t *testing.T) {
	s := newTestSigner(t)
	nonce, _ := s.IssueNonce("save_slider", "u1", "s1")

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if s.VerifyNonce(nonce, "save_slider", "u1", "s1") {
		t.Error("expected expired nonce to be rejected")
	}
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !CheckPassword(hash, "hunter2") {
		t.Error("CheckPassword rejected the right password")
	}
	if CheckPassword(hash, "hunter3") {
		t.Error("CheckPassword accepted the wrong password")
	}
	if _, err := HashPassword(""); err == nil {
		t.Error("expected error for empty password")
	}
}
