package handler

import (
	"net/http"
	"time"

	"ecowatch/internal/delivery/http/middleware"
	"ecowatch/internal/delivery/http/response"
	"ecowatch/internal/domain/entity"
	domainerrors "ecowatch/internal/domain/errors"
	"ecowatch/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// locationView is the location representation returned to clients.
type locationView struct {
	ID         string    `json:"id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Address    string    `json:"address,omitempty"`
	CapturedAt time.Time `json:"capturedAt"`
}

func newLocationView(location *entity.Location) locationView {
	return locationView{
		ID:         location.ID.String(),
		Latitude:   location.Latitude,
		Longitude:  location.Longitude,
		Address:    location.Address,
		CapturedAt: location.CapturedAt,
	}
}

// saveLocationRequest is the JSON body of POST /locations.
type saveLocationRequest struct {
	Latitude   float64    `json:"latitude" validate:"min=-90,max=90"`
	Longitude  float64    `json:"longitude" validate:"min=-180,max=180"`
	Address    string     `json:"address"`
	CapturedAt *time.Time `json:"capturedAt"`
}

// LocationHandler holds dependencies for location handlers.
type LocationHandler struct {
	uc usecase.LocationUsecase
}

// NewLocationHandler is the constructor for LocationHandler, injected by Fx.
func NewLocationHandler(uc usecase.LocationUsecase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

// Save captures a location for the authenticated user.
func (h *LocationHandler) Save(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return domainerrors.ErrUnauthorized
	}

	var req saveLocationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid location input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := &usecase.SaveLocationInput{
		UserID:    identity.UserID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Address:   req.Address,
	}
	if req.CapturedAt != nil {
		input.CapturedAt = *req.CapturedAt
	}

	location, err := h.uc.SaveLocation(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newLocationView(location), "Location saved successfully")
}

// ListMine returns the authenticated user's captured locations.
func (h *LocationHandler) ListMine(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return domainerrors.ErrUnauthorized
	}

	locations, err := h.uc.ListUserLocations(c.Request().Context(), identity.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]locationView, 0, len(locations))
	for _, location := range locations {
		views = append(views, newLocationView(location))
	}

	return response.Success(c, http.StatusOK, views, "Locations retrieved successfully")
}
