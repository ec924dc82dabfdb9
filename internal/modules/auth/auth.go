package auth

import (
	"context"
	"errors"
)

// ErrInvalidCredentials covers both unknown accounts and wrong passwords on
// login; callers must not be able to tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service defines the interface for authentication-related business logic.
type Service interface {
	// CustomerLogin accepts a username or an email address.
	CustomerLogin(ctx context.Context, usernameOrEmail, password string) (string, error)
	AdminLogin(ctx context.Context, username, password string) (string, error)
}
