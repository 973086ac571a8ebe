package entity

import (
	"time"

	"github.com/google/uuid"
)

// Organization is an agency or NGO that may act on reports.
// The schema is persisted but no flow reads or writes it yet.
type Organization struct {
	ID           uuid.UUID
	Name         string
	ContactEmail string // Unique across all organizations.
	Phone        string
	PasswordHash string
	Category     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
