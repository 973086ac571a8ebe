package repository

import (
	"context"

	"ecowatch/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrLocationNotFound is the sentinel returned when a location lookup matches nothing.
var ErrLocationNotFound = NewNotFoundError("location not found")

// LocationRepository provides persistence access to the Location entity.
type LocationRepository interface {
	// Create persists a new captured location for a user.
	Create(ctx context.Context, location *entity.Location) error

	// FindByID returns the location with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Location, error)

	// FindByUser returns the user's captured locations, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Location, error)
}
