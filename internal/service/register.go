package service

import (
	"context"
	"errors"
	"fmt"

	"lightbnb/internal/database"
	"lightbnb/internal/model"
	"lightbnb/internal/sqlerr"
	"lightbnb/internal/store"

	"github.com/go-playground/validator/v10"
)

// ErrEmailTaken is returned when another account already uses the email.
var ErrEmailTaken = errors.New("email already registered")

var validate = validator.New()

type NewUserInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterUser validates in, stores the user with a hashed password and
// returns it with its new id.
func RegisterUser(ctx context.Context, db database.DB, in NewUserInput) (*model.User, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("RegisterUser: %w", err)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("RegisterUser: hash password: %w", err)
	}

	user, err := store.AddUser(ctx, db, &model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if store.IsCode(err, sqlerr.UniqueViolation) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("RegisterUser: %w", err)
	}
	return user, nil
}

// CreateProperty validates p and stores it. CostPerNight must already be
// in cents.
func CreateProperty(ctx context.Context, db database.DB, p *model.Property) (*model.Property, error) {
	if err := validate.Struct(p); err != nil {
		return nil, fmt.Errorf("CreateProperty: %w", err)
	}
	created, err := store.AddProperty(ctx, db, p)
	if err != nil {
		return nil, fmt.Errorf("CreateProperty: %w", err)
	}
	return created, nil
}
