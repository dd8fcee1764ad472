package service

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/devfolio/backend/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

// authServiceImpl authenticates against a single config-injected admin
// credential. There is no user table.
type authServiceImpl struct {
	admin       AdminCredential
	tokenSecret []byte
	tokenTTL    time.Duration
}

// NewAuthService creates an AuthService for the given admin credential.
// Tokens are signed with tokenSecret and expire after tokenTTL.
func NewAuthService(admin AdminCredential, tokenSecret []byte, tokenTTL time.Duration) AuthService {
	return &authServiceImpl{
		admin:       admin,
		tokenSecret: tokenSecret,
		tokenTTL:    tokenTTL,
	}
}

// Login checks the credential pair and mints a token. Both the username
// comparison and the password hash check always run, so a wrong username is
// not distinguishable from a wrong password by timing.
func (s *authServiceImpl) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.admin.Username)) == 1
	passwordErr := bcrypt.CompareHashAndPassword(s.admin.PasswordHash, []byte(password))
	if !usernameOK || passwordErr != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(s.admin.Username, s.tokenSecret, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Username: s.admin.Username}, nil
}
