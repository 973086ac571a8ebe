// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity of the system, representing a registered reporter.
// It owns zero or more Reports and zero or more Locations.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Email        string    // The user's email, unique across all users, used as the login identifier.
	Name         string    // The user's display name. Optional.
	PasswordHash string    // The bcrypt digest of the user's password. Only populated on the credential-lookup path.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// Identity is the decoded session identity carried by a verified token.
// It holds only the claims embedded in the token, never the password digest.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Name   string
}
