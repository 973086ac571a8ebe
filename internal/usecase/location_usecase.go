package usecase

import (
	"context"
	"time"

	"ecowatch/internal/domain/entity"

	"github.com/google/uuid"
)

// SaveLocationInput defines the data required to capture a location.
type SaveLocationInput struct {
	UserID     uuid.UUID
	Latitude   float64
	Longitude  float64
	Address    string
	CapturedAt time.Time // Zero value defaults to the server time.
}

// LocationUsecase defines the interface for location business operations.
type LocationUsecase interface {
	// SaveLocation validates the coordinates and persists the capture.
	SaveLocation(ctx context.Context, input *SaveLocationInput) (*entity.Location, error)

	// ListUserLocations returns the user's captured locations, newest first.
	ListUserLocations(ctx context.Context, userID uuid.UUID) ([]*entity.Location, error)
}
