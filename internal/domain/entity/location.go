package entity

import (
	"time"

	"github.com/google/uuid"
)

// Location is a geographic point captured by a user, optionally annotated
// with a reverse-geocoded address. A location may be referenced by zero or
// more Reports.
type Location struct {
	ID         uuid.UUID
	UserID     uuid.UUID // The owning user.
	Latitude   float64
	Longitude  float64
	Address    string    // Human-readable address. Optional.
	CapturedAt time.Time // When the coordinates were captured on the client.
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
