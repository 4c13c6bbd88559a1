package service

import (
	"errors"
	"testing"
	"time"
)

func TestAuthService_IssueAndParse(t *testing.T) {
	svc := NewAuthService("test-key", time.Minute)

	token, err := svc.IssueAccessToken("42", "alice", "admin")
	if err != nil {
		t.Fatalf("IssueAccessToken failed: %v", err)
	}

	claims, err := svc.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("ParseAccessToken failed: %v", err)
	}
	if claims.UserID != "42" || claims.Username != "alice" || claims.Role != "admin" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Rejects(t *testing.T) {
	svc := NewAuthService("test-key", time.Minute)
	other := NewAuthService("other-key", time.Minute)

	foreign, _ := other.IssueAccessToken("1", "mallory", "admin")
	if _, err := svc.ParseAccessToken(foreign); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for foreign signature, got %v", err)
	}

	expired := NewAuthService("test-key", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, _ := expired.IssueAccessToken("1", "bob", "admin")
	if _, err := svc.ParseAccessToken(old); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for expired token, got %v", err)
	}

	if _, err := svc.ParseAccessToken("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for garbage, got %v", err)
	}
}
