package service

import (
	"context"
	"errors"
)

// ErrInvalidCredentials is returned when a login attempt does not match the
// provisioned admin credential. The caller cannot tell whether the username
// or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AdminCredential is the single provisioned admin principal, injected at
// startup. PasswordHash is a bcrypt hash; the plaintext password is never
// stored.
type AdminCredential struct {
	Username     string
	PasswordHash []byte
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// AuthService defines the admin authentication logic.
type AuthService interface {
	// Login verifies username/password against the provisioned admin
	// credential and issues a bearer token on success. A mismatch yields
	// ErrInvalidCredentials and no token.
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}
