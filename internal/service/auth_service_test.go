package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/devfolio/backend/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

func testAdmin(t *testing.T) AdminCredential {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return AdminCredential{Username: "admin", PasswordHash: hash}
}

var testSecret = auth.TokenSecretBytes("test-secret")

func TestAuthService_Login_Success(t *testing.T) {
	svc := NewAuthService(testAdmin(t), testSecret, time.Hour)

	result, err := svc.Login(context.Background(), "admin", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a token")
	}
	if result.Username != "admin" {
		t.Errorf("expected username=admin, got %q", result.Username)
	}

	// The issued token must verify and carry the admin username.
	username, err := auth.VerifyToken(result.Token, testSecret)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if username != "admin" {
		t.Errorf("expected token to carry username=admin, got %q", username)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := NewAuthService(testAdmin(t), testSecret, time.Hour)

	result, err := svc.Login(context.Background(), "admin", "nope")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if result != nil {
		t.Error("expected no result on failed login")
	}
}

func TestAuthService_Login_WrongUsername(t *testing.T) {
	svc := NewAuthService(testAdmin(t), testSecret, time.Hour)

	_, err := svc.Login(context.Background(), "root", "secret")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}
