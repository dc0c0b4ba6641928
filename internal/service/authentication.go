// File: internal/service/authentication.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lightbnb/internal/database"
	"lightbnb/internal/model"
	"lightbnb/internal/store"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Authenticate returns the user owning email when password matches.
func Authenticate(ctx context.Context, db database.DB, email, password string) (*model.User, error) {
	user, err := store.GetUserWithEmail(ctx, db, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("Authenticate: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
