// Package repository defines the persistence interfaces of the domain.
// Implementations live in internal/infra/persistence and are injected into
// the use cases, keeping the domain free of storage concerns.
package repository

import (
	"context"

	"ecowatch/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is the sentinel returned when a user lookup matches nothing.
// All lookups degrade to this value on not-found rather than failing.
var ErrUserNotFound = NewNotFoundError("user not found")

// UserRepository provides CRUD access to the User entity.
type UserRepository interface {
	// FindByID returns the user with the given ID without the password digest.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail returns the user with the given email without the password digest.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindCredentialsByEmail returns the user including the password digest.
	// It exists solely for the authentication path; all other callers use
	// FindByEmail and never see the digest.
	FindCredentialsByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user. A duplicate email surfaces as the domain
	// conflict error so a registration race is resolved by the store.
	Create(ctx context.Context, user *entity.User) error

	// Update applies the given partial fields to an existing user.
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) error
}

// NotFoundError is the common sentinel type for repository lookups.
type NotFoundError struct {
	msg string
}

// NewNotFoundError creates a not-found sentinel with the given message.
func NewNotFoundError(msg string) *NotFoundError {
	return &NotFoundError{msg: msg}
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return e.msg
}
