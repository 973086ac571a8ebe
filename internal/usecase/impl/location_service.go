package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "ecowatch/internal/delivery/context"
	"ecowatch/internal/domain/entity"
	"ecowatch/internal/domain/repository"
	"ecowatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// locationService implements the LocationUsecase interface.
type locationService struct {
	locationRepo repository.LocationRepository
	logger       *slog.Logger
}

// LocationServiceParams holds dependencies for locationService, injected by Fx.
type LocationServiceParams struct {
	fx.In

	LocationRepo repository.LocationRepository
	Logger       *slog.Logger
}

// NewLocationService is the constructor for locationService.
func NewLocationService(params LocationServiceParams) usecase.LocationUsecase {
	return &locationService{
		locationRepo: params.LocationRepo,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *locationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SaveLocation validates the coordinates and persists the capture. A zero
// CapturedAt defaults to the server time.
func (srv *locationService) SaveLocation(ctx context.Context, input *usecase.SaveLocationInput) (*entity.Location, error) {
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	capturedAt := input.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = time.Now()
	}

	location := &entity.Location{
		UserID:     input.UserID,
		Latitude:   input.Latitude,
		Longitude:  input.Longitude,
		Address:    strings.TrimSpace(input.Address),
		CapturedAt: capturedAt,
	}

	if err := srv.locationRepo.Create(ctx, location); err != nil {
		srv.log(ctx).Error("Failed to persist location", slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Location saved",
		slog.Any("locationID", location.ID),
		slog.Any("userID", location.UserID))

	return location, nil
}

// ListUserLocations returns the user's captured locations, newest first.
func (srv *locationService) ListUserLocations(ctx context.Context, userID uuid.UUID) ([]*entity.Location, error) {
	locations, err := srv.locationRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user locations")
	}

	return locations, nil
}
