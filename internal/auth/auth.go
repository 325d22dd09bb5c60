// Package auth presents sign-in for the console. Credentials are checked by
// an IdentityProvider; Session tracks who is signed in and tells subscribers
// when that changes.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"ecosoap/internal/logging"
	"ecosoap/internal/model"
	"ecosoap/internal/store"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for an unknown user or a wrong password.
var ErrInvalidCredentials = errors.New("auth: invalid username or password")

// IdentityProvider verifies a username and password.
type IdentityProvider interface {
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
}

// UserLookup finds users by username.
type UserLookup interface {
	UserByUsername(ctx context.Context, username string) (*model.User, error)
}

// LocalProvider checks passwords against bcrypt hashes held in the store.
type LocalProvider struct {
	users UserLookup
	log   *slog.Logger
}

func NewLocalProvider(users UserLookup, log *slog.Logger) *LocalProvider {
	return &LocalProvider{users: users, log: logging.OrDiscard(log)}
}

func (p *LocalProvider) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := p.users.UserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		p.log.Info("sign-in rejected", "username", username, "reason", "unknown user")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("look up %s: %w", username, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		p.log.Info("sign-in rejected", "username", username, "reason", "password mismatch")
		return nil, ErrInvalidCredentials
	}

	p.log.Info("signed in", "username", username)
	return u, nil
}

// HashPassword returns a bcrypt hash suitable for a fixture's password_hash.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}
