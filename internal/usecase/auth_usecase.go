// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"ecowatch/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
// PasswordConfirm is only populated by the form-based entry point; when set
// it must equal Password.
type RegisterInput struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"passwordConfirm,omitempty"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// AuthOutput returns the authenticated user and the signed session token.
// The delivery layer writes the token into the session cookie.
type AuthOutput struct {
	User  *entity.User
	Token string
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract that the delivery layer depends on.
type AuthUsecase interface {
	// Register creates a new account. It fails with the conflict error when
	// the email is already present and with the validation error when any
	// precondition fails; validation runs before any store access.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login authenticates an existing account. An unknown email and a wrong
	// password both return the identical invalid-credentials error.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// CurrentUser decodes a session token into an identity. It returns nil
	// for an absent, forged, malformed or expired token and never returns
	// an error.
	CurrentUser(ctx context.Context, token string) *entity.Identity
}
